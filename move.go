/*
 * move.go, part of govmmc.
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

	"github.com/rmera/govmmc/vec"
)

//proposeMove samples the parameters of the next trial move: the seed
//particle, the move type, the trial direction (a uniform point on the unit
//circle/sphere, which doubles as the rotation axis in 3D) and the step size.
//Translation magnitudes are scaled by u^(1/D) so the displacement samples
//the ball uniformly; rotation angles are uniform in [-max, max].
func (v *VMMC) proposeMove() {
	v.nAttempts++
	v.params.seed = v.RNG.Intn(v.nParticles)

	for i := range v.params.trialVector {
		v.params.trialVector[i] = v.normal.Rand()
	}
	vec.Normalize(v.params.trialVector)

	isRotation := v.RNG.Float64() >= v.cfg.ProbTranslate
	if isRotation && v.isIsotropic[v.params.seed] {
		//cluster rotations are only seeded from anisotropic particles
		isRotation = false
	}
	v.params.isRotation = isRotation
	if isRotation {
		v.params.stepSize = v.cfg.MaxTrialRotation * (2*v.RNG.Float64() - 1)
	} else {
		power := 1.0 / 2.0
		if v.is3D {
			power = 1.0 / 3.0
		}
		v.params.stepSize = v.cfg.MaxTrialTranslation * math.Pow(v.RNG.Float64(), power)
	}

	//Sample the cluster-size cutoff as floor(1/u), which biases trial
	//cluster sizes by 1/n as super-detailed balance requires.
	u := v.RNG.Float64()
	v.cutOff = v.nParticles
	if u > 1.0/float64(v.nParticles) {
		v.cutOff = int(1.0 / u)
	}
}

//applyMove pushes the trial state of every cluster member to the model.
func (v *VMMC) applyMove() {
	for _, i := range v.moveList {
		p := &v.particles[i]
		v.model.PostMove(i, p.postMovePos, p.postMoveOrient)
	}
}

//revertMove walks the cluster and restores every moved particle to its
//pre-move state through the model's PostMove hook. Together with applyMove
//this is why the hook runs twice per member on a rejection.
func (v *VMMC) revertMove() {
	for _, i := range v.moveList {
		p := &v.particles[i]
		v.model.PostMove(i, p.pos, p.orient)
	}
}

//commitMove makes the trial state the committed one and updates the running
//energy and the statistics.
func (v *VMMC) commitMove(deltaE float64) {
	for _, i := range v.moveList {
		p := &v.particles[i]
		copy(p.pos, p.postMovePos)
		copy(p.orient, p.postMoveOrient)
	}
	v.energy += deltaE
	v.nAccepts++
	n := len(v.moveList)
	if v.params.isRotation {
		v.nRotations++
		v.clusterRotations[n-1]++
	} else {
		v.clusterTranslations[n-1]++
	}
}

//clearCluster resets the per-trial scratch state.
func (v *VMMC) clearCluster() {
	for _, i := range v.moveList {
		v.particles[i].isMoving = false
	}
	v.moveList = v.moveList[:0]
	v.workStack = v.workStack[:0]
	v.pairs.reset()
	v.nFrustrated = 0
	v.frustrationW = 1
	v.isEarlyExit = false
}

//newState returns the position and orientation the model currently sees for
//p: the trial state for cluster members once applyMove has run, the
//committed state otherwise.
func (v *VMMC) newState(p *particle) ([]float64, []float64) {
	if p.isMoving {
		return p.postMovePos, p.postMoveOrient
	}
	return p.pos, p.orient
}

//decide runs the overlap/energy phase on the applied trial state and the
//Metropolis test. It returns whether the move is accepted and the total
//energy change to book on acceptance.
//
//Two energy sums are kept. deltaAccept drives the acceptance: links plus
//contacts formed at the new configuration. deltaTotal additionally carries
//the unlinked pairs, whose Metropolis weight was already paid by the
//no-link probabilities sampled during growth but whose energy change is
//real and must reach the running total. Internal cluster pairs are energy
//invariants of a rigid translation and are excluded from both sums for
//translations; rotations include them, since a rotation wrapping across the
//periodic box can change internal separations.
func (v *VMMC) decide() (bool, float64, error) {
	var deltaAccept, deltaTotal float64

	//pairs recorded during growth: links and declined links
	for idx := range v.pairs.pairs {
		pr := &v.pairs.pairs[idx]
		pa, pb := &v.particles[pr.a], &v.particles[pr.b]
		bothMoving := pa.isMoving && pb.isMoving
		if bothMoving && !v.params.isRotation {
			continue
		}
		eNew := pr.newEnergy
		if !pr.unlinked || bothMoving {
			//unlinked pairs with an undragged partner already carry their
			//final energy from growth; everything else is recomputed on
			//the applied state
			posA, orientA := v.newState(pa)
			posB, orientB := v.newState(pb)
			eNew = v.model.PairEnergy(pr.a, posA, orientA, pr.b, posB, orientB)
			if math.IsNaN(eNew) {
				panic(ErrNaNEnergy)
			}
			pr.newEnergy = eNew
		}
		if eNew >= EnergyOverlap {
			return false, 0, nil
		}
		diff := eNew - pr.oldEnergy
		deltaTotal += diff
		if !pr.unlinked || bothMoving {
			deltaAccept += diff
		}
	}

	//pairs that interact only at the new configuration
	for _, a := range v.moveList {
		pa := &v.particles[a]
		k := v.model.Interactions(a, pa.postMovePos, pa.postMoveOrient, v.nbuf)
		if k > v.cfg.MaxInteractions {
			return false, 0, Error{fmt.Sprintf("Model listed %d interactions for particle %d, %d allowed", k, a, v.cfg.MaxInteractions), []string{"decide"}, false}
		}
		for _, j := range v.nbuf[:k] {
			if v.pairs.has(a, j) {
				continue
			}
			pj := &v.particles[j]
			if pa.isMoving && pj.isMoving && !v.params.isRotation {
				continue
			}
			posJ, orientJ := v.newState(pj)
			eNew := v.model.PairEnergy(a, pa.postMovePos, pa.postMoveOrient, j, posJ, orientJ)
			if math.IsNaN(eNew) {
				panic(ErrNaNEnergy)
			}
			if eNew >= EnergyOverlap {
				return false, 0, nil
			}
			if eNew == 0 {
				continue
			}
			if eNew > 0 && !v.cfg.IsRepulsive {
				//a model without finite repulsion produced a positive
				//energy: the contact is an overlap in all but name
				return false, 0, nil
			}
			eOld := v.model.PairEnergy(a, pa.pos, pa.orient, j, pj.pos, pj.orient)
			if math.IsNaN(eOld) {
				panic(ErrNaNEnergy)
			}
			st := v.pairs.add(a, j, eOld, false)
			st.newEnergy = eNew
			deltaAccept += eNew - eOld
			deltaTotal += eNew - eOld
		}
	}

	//custom boundaries and non-pairwise terms, when the model has them
	if v.bounder != nil {
		for _, i := range v.moveList {
			p := &v.particles[i]
			if v.bounder.OutsideBoundary(i, p.postMovePos, p.postMoveOrient) {
				return false, 0, nil
			}
		}
	}
	if v.nonPairwise != nil {
		for _, i := range v.moveList {
			p := &v.particles[i]
			diff := v.nonPairwise.NonPairwise(i, p.postMovePos, p.postMoveOrient) -
				v.nonPairwise.NonPairwise(i, p.pos, p.orient)
			deltaAccept += diff
			deltaTotal += diff
		}
	}

	if deltaAccept >= EnergyOverlap {
		return false, 0, nil
	}
	acc := v.frustrationW * v.hydrodynamicDamping() * math.Exp(-deltaAccept)
	if acc >= 1 {
		return true, deltaTotal, nil
	}
	return v.RNG.Float64() < acc, deltaTotal, nil
}

//hydrodynamicDamping approximates the cluster as a sphere of effective
//radius R_c = referenceRadius*n^(1/D) and returns the ratio of the cluster's
//Stokes mobility to the reference particle's: R/R_c for translations,
//(R/R_c)^3 for rotations. A single-particle cluster is undamped.
func (v *VMMC) hydrodynamicDamping() float64 {
	n := float64(len(v.moveList))
	if n == 1 {
		return 1
	}
	radius := v.cfg.ReferenceRadius * math.Pow(n, 1/float64(v.dimension))
	scale := v.cfg.ReferenceRadius / radius
	if v.params.isRotation {
		return scale * scale * scale
	}
	return scale
}
