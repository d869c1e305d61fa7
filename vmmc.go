/*
 * vmmc.go, part of govmmc.
 *
 * Copyright 2016 Raul Mera
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package vmmc

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rmera/govmmc/vec"
)

const (
	//EnergyOverlap is the infinite-energy sentinel threshold. Any pair or
	//particle energy at or above it signals a hard-core overlap and triggers
	//certain rejection.
	EnergyOverlap = 1e10

	//orientTol is the tolerance to which orientations are kept unit length.
	orientTol = 1e-10

	//inputTol is the tolerance accepted for user-supplied orientations,
	//which are renormalized on ingestion.
	inputTol = 1e-6
)

//Infinity is the conventional return value for hard-core overlaps.
var Infinity = math.Inf(1)

//Config collects the parameters of the VMMC engine. Distances are in units
//of the particle diameter, angles in radians, energies in kBT.
type Config struct {
	Dimension           int       //2 or 3
	BoxSize             []float64 //periodic box side lengths, len == Dimension
	MaxTrialTranslation float64   //maximum trial translation magnitude
	MaxTrialRotation    float64   //maximum trial rotation angle
	ProbTranslate       float64   //probability of attempting a translation (vs a rotation)
	ReferenceRadius     float64   //reference particle radius for Stokes scaling
	MaxInteractions     int       //maximum number of interactions per particle
	IsRepulsive         bool      //whether the potential has finite repulsive interactions
	Seed                uint64    //seed for the engine-owned PRNG
}

//moveParams holds the parameters of the trial move in flight.
type moveParams struct {
	seed        int
	isRotation  bool
	stepSize    float64
	trialVector []float64
}

//VMMC drives virtual-move Monte Carlo sampling of a particle system whose
//potential is supplied through a Model. The engine owns a copy of the
//particle state; the user mirrors it back through the Model's PostMove
//method.
type VMMC struct {
	//RNG is the engine-owned random number generator. It may be reseeded
	//between steps for reproducible runs.
	RNG *rand.Rand

	model       Model
	nonPairwise NonPairwiser //nil if the model does not implement it
	bounder     Bounder      //idem

	nParticles  int
	dimension   int
	is3D        bool
	box         *vec.Box
	cfg         Config
	isIsotropic []bool

	normal distuv.Normal

	particles []particle
	params    moveParams

	//cluster scratch, reused across steps
	moveList    []int
	workStack   []int
	pairs       *pairStore
	nbuf        []int
	scratch     []float64
	scratch2    []float64
	hypoPos     []float64
	hypoOrient  []float64
	cutOff      int
	isEarlyExit bool

	nFrustrated  int
	frustrationW float64

	energy float64

	nAttempts, nAccepts, nRotations uint64
	clusterTranslations             []uint64
	clusterRotations                []uint64
}

//New builds a VMMC engine for nParticles = len(coordinates)/cfg.Dimension
//particles. coordinates and orientations are flat row-major arrays of
//Dimension components per particle; orientations must be unit vectors (a
//dummy unit vector for isotropic species). isIsotropic flags particles whose
//potential does not depend on orientation; nil means all anisotropic. The
//input arrays are copied; the engine observes the caller's storage only
//through the Model callbacks.
func New(model Model, coordinates, orientations []float64, isIsotropic []bool, cfg Config) (*VMMC, error) {
	if model == nil {
		return nil, Error{"nil Model", []string{"New"}, true}
	}
	d := cfg.Dimension
	if d != 2 && d != 3 {
		return nil, Error{fmt.Sprintf("dimension must be 2 or 3, not %d", d), []string{"New"}, true}
	}
	if len(cfg.BoxSize) != d {
		return nil, Error{fmt.Sprintf("%d box sides given for dimension %d", len(cfg.BoxSize), d), []string{"New"}, true}
	}
	box, err := vec.NewBox(cfg.BoxSize)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	if cfg.ProbTranslate < 0 || cfg.ProbTranslate > 1 {
		return nil, Error{fmt.Sprintf("probability of translation out of [0,1]: %f", cfg.ProbTranslate), []string{"New"}, true}
	}
	if cfg.MaxInteractions <= 0 {
		return nil, Error{fmt.Sprintf("maximum interactions per particle must be positive, not %d", cfg.MaxInteractions), []string{"New"}, true}
	}
	if cfg.ReferenceRadius <= 0 {
		return nil, Error{fmt.Sprintf("reference radius must be positive, not %f", cfg.ReferenceRadius), []string{"New"}, true}
	}
	if cfg.MaxTrialTranslation < 0 || cfg.MaxTrialRotation < 0 {
		return nil, Error{"trial move magnitudes cannot be negative", []string{"New"}, true}
	}
	if len(coordinates) == 0 || len(coordinates)%d != 0 {
		return nil, Error{fmt.Sprintf("len(coordinates)=%d is not a positive multiple of the dimension %d", len(coordinates), d), []string{"New"}, true}
	}
	n := len(coordinates) / d
	if len(orientations) != n*d {
		return nil, Error{fmt.Sprintf("%d orientation components given, %d needed", len(orientations), n*d), []string{"New"}, true}
	}
	if isIsotropic != nil && len(isIsotropic) != n {
		return nil, Error{fmt.Sprintf("%d isotropy flags given, %d needed", len(isIsotropic), n), []string{"New"}, true}
	}

	v := new(VMMC)
	v.model = model
	v.nonPairwise, _ = model.(NonPairwiser)
	v.bounder, _ = model.(Bounder)
	v.nParticles = n
	v.dimension = d
	v.is3D = d == 3
	v.box = box
	v.cfg = cfg
	v.cfg.BoxSize = box.Size //the validated copy

	v.isIsotropic = make([]bool, n)
	if isIsotropic != nil {
		copy(v.isIsotropic, isIsotropic)
	}
	//An all-isotropic system has no rotational degrees of freedom to sample.
	allIso := true
	for _, iso := range v.isIsotropic {
		if !iso {
			allIso = false
			break
		}
	}
	if allIso {
		v.cfg.ProbTranslate = 1.0
	}

	v.particles = make([]particle, n)
	for i := 0; i < n; i++ {
		p := newParticle(i, d)
		copy(p.pos, coordinates[i*d:(i+1)*d])
		if !box.Inside(p.pos) {
			return nil, Error{fmt.Sprintf("particle %d is outside the primary image: %v", i, p.pos), []string{"New"}, true}
		}
		copy(p.orient, orientations[i*d:(i+1)*d])
		if math.Abs(vec.Norm(p.orient)-1) > inputTol {
			return nil, Error{fmt.Sprintf("orientation of particle %d is not a unit vector: %v", i, p.orient), []string{"New"}, true}
		}
		vec.Normalize(p.orient)
		v.particles[i] = p
	}

	src := rand.NewSource(cfg.Seed)
	v.RNG = rand.New(src)
	v.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	v.params.trialVector = make([]float64, d)
	v.moveList = make([]int, 0, n)
	v.workStack = make([]int, 0, n)
	v.pairs = newPairStore(n, cfg.MaxInteractions*16)
	v.nbuf = make([]int, cfg.MaxInteractions)
	v.scratch = make([]float64, d)
	v.scratch2 = make([]float64, d)
	v.hypoPos = make([]float64, d)
	v.hypoOrient = make([]float64, d)
	v.clusterTranslations = make([]uint64, n)
	v.clusterRotations = make([]uint64, n)
	v.frustrationW = 1

	v.energy = v.RecomputeEnergy()
	return v, nil
}

//Step performs a single VMMC trial move. Only capacity errors (a Model
//listing more neighbours than MaxInteractions allows) are returned; every
//other failure mode manifests as a move rejection.
func (v *VMMC) Step() error {
	v.proposeMove()
	if err := v.growCluster(); err != nil {
		v.clearCluster()
		return errDecorate(err, "Step")
	}
	if v.isEarlyExit {
		v.clearCluster()
		return nil
	}
	v.applyMove()
	accepted, deltaE, err := v.decide()
	if err != nil {
		v.revertMove()
		v.clearCluster()
		return errDecorate(err, "Step")
	}
	if accepted {
		v.commitMove(deltaE)
	} else {
		v.revertMove()
	}
	v.clearCluster()
	return nil
}

//StepN performs n VMMC trial moves, stopping at the first error.
func (v *VMMC) StepN(n int) error {
	for i := 0; i < n; i++ {
		if err := v.Step(); err != nil {
			return err
		}
	}
	return nil
}

//Inc is sugar for a single Step.
func (v *VMMC) Inc() error { return v.Step() }

//Add is sugar for StepN.
func (v *VMMC) Add(n int) error { return v.StepN(n) }

//Energy returns the running total interaction energy of the system, updated
//by the energy change of every accepted move.
func (v *VMMC) Energy() float64 { return v.energy }

//RecomputeEnergy returns a fresh full-system energy, summing the Model's
//per-particle energies and halving to undo the pair double count. It does
//not touch the running total.
func (v *VMMC) RecomputeEnergy() float64 {
	var e float64
	for i := range v.particles {
		p := &v.particles[i]
		e += v.model.Energy(i, p.pos, p.orient)
	}
	return e / 2
}

//NParticles returns the number of particles.
func (v *VMMC) NParticles() int { return v.nParticles }

//Dimension returns the dimensionality of the system.
func (v *VMMC) Dimension() int { return v.dimension }

//Attempts returns the number of attempted virtual moves.
func (v *VMMC) Attempts() uint64 { return v.nAttempts }

//Accepts returns the number of accepted virtual moves.
func (v *VMMC) Accepts() uint64 { return v.nAccepts }

//Rotations returns the number of accepted rotation moves.
func (v *VMMC) Rotations() uint64 { return v.nRotations }

//ClusterTranslations returns the number of accepted translations for each
//cluster size; element i counts clusters of i+1 particles. The returned
//slice is a copy.
func (v *VMMC) ClusterTranslations() []uint64 {
	ret := make([]uint64, len(v.clusterTranslations))
	copy(ret, v.clusterTranslations)
	return ret
}

//ClusterRotations returns the number of accepted rotations for each cluster
//size; element i counts clusters of i+1 particles. The returned slice is a
//copy.
func (v *VMMC) ClusterRotations() []uint64 {
	ret := make([]uint64, len(v.clusterRotations))
	copy(ret, v.clusterRotations)
	return ret
}

//Position copies the committed position of particle i into dst (allocating
//if dst is nil) and returns it.
func (v *VMMC) Position(i int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, v.dimension)
	}
	copy(dst, v.particles[i].pos)
	return dst
}

//Orientation copies the committed orientation of particle i into dst
//(allocating if dst is nil) and returns it.
func (v *VMMC) Orientation(i int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, v.dimension)
	}
	copy(dst, v.particles[i].orient)
	return dst
}

//ResetStatistics zeroes the attempt/accept counters and the per-cluster-size
//tallies. The running energy and the particle state are untouched.
func (v *VMMC) ResetStatistics() {
	v.nAttempts = 0
	v.nAccepts = 0
	v.nRotations = 0
	for i := range v.clusterTranslations {
		v.clusterTranslations[i] = 0
		v.clusterRotations[i] = 0
	}
}
