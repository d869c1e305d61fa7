//Package potential provides ready-made interaction models for the vmmc
//engine: square-well particles, a shifted Lennard-Jones fluid, hard spheres
//and two-dimensional patchy discs. All of them keep their particle state in
//a System, enumerate neighbours through a periodic cell list and mirror the
//engine's post-move notifications back into both.
//
//Distances are in units of the particle diameter, energies in kBT.
package potential

import (
	"fmt"
	"math"

	"github.com/rmera/govmmc/cell"
	"github.com/rmera/govmmc/vec"
)

//Inf is the hard-core overlap sentinel returned by the models.
var Inf = math.Inf(1)

//earlyExit is the energy above which a per-particle energy sum bails out to
//the overlap sentinel.
const earlyExit = 1e6

//PairFunc is the model-specific pair interaction energy. It must be
//symmetric in its arguments.
type PairFunc func(i int, posi, orienti []float64, j int, posj, orientj []float64) float64

//System holds the particle state shared by all models in this package and
//implements the engine's Model interface. The concrete potential is plugged
//in as a PairFunc by the model constructors.
type System struct {
	Box             *vec.Box
	Cells           *cell.List
	MaxInteractions int

	InteractionEnergy float64
	InteractionRange  float64

	n            int
	dim          int
	positions    []float64
	orientations []float64
	sqCutOff     float64

	pair PairFunc
	//when set, Interactions lists neighbours by a negative pair energy
	//instead of by distance (needed for patchy particles, whose bonding
	//depends on orientation)
	byEnergy bool

	scratch []float64
}

func newSystem(n int, box *vec.Box, cells *cell.List, maxInteractions int, energy, irange float64) *System {
	s := new(System)
	s.Box = box
	s.Cells = cells
	s.MaxInteractions = maxInteractions
	s.InteractionEnergy = energy
	s.InteractionRange = irange
	s.n = n
	s.dim = box.Dimension
	s.positions = make([]float64, n*s.dim)
	s.orientations = make([]float64, n*s.dim)
	s.sqCutOff = irange * irange
	s.scratch = make([]float64, s.dim)
	return s
}

//NParticles returns the number of particles in the system.
func (s *System) NParticles() int { return s.n }

//Positions returns the flat row-major position array. The engine copies it
//at construction; afterwards the system keeps it current through PostMove.
func (s *System) Positions() []float64 { return s.positions }

//Orientations returns the flat row-major orientation array.
func (s *System) Orientations() []float64 { return s.orientations }

//Position returns a view of the position of particle i.
func (s *System) Position(i int) []float64 { return s.positions[i*s.dim : (i+1)*s.dim] }

//Orientation returns a view of the orientation of particle i.
func (s *System) Orientation(i int) []float64 { return s.orientations[i*s.dim : (i+1)*s.dim] }

//Energy returns the total interaction energy felt by particle i at the
//given hypothetical position and orientation, all other particles taken at
//their committed state.
func (s *System) Energy(i int, pos, orient []float64) float64 {
	var energy float64
	for _, m := range s.Cells.Neighbours(s.Cells.Cell(i)) {
		for _, j := range s.Cells.Particles(m) {
			if j == i {
				continue
			}
			energy += s.pair(i, pos, orient, j, s.Position(j), s.Orientation(j))
			if energy > earlyExit {
				return Inf
			}
		}
	}
	return energy
}

//PairEnergy returns the pair interaction energy between particles i and j
//in the given hypothetical configuration.
func (s *System) PairEnergy(i int, posi, orienti []float64, j int, posj, orientj []float64) float64 {
	return s.pair(i, posi, orienti, j, posj, orientj)
}

//Interactions writes the neighbours of particle i at the given hypothetical
//configuration into out and returns their number. Neighbours are listed by
//distance within the interaction range or, for orientation-dependent
//models, by a negative pair energy. It panics if out cannot hold them all;
//the engine sizes out by its MaxInteractions, so with a consistent
//configuration this is unreachable.
func (s *System) Interactions(i int, pos, orient []float64, out []int) int {
	k := 0
	for _, m := range s.Cells.Neighbours(s.Cells.Cell(i)) {
		for _, j := range s.Cells.Particles(m) {
			if j == i {
				continue
			}
			interacts := false
			if s.byEnergy {
				interacts = s.pair(i, pos, orient, j, s.Position(j), s.Orientation(j)) < 0
			} else {
				sep := s.scratch
				for x := 0; x < s.dim; x++ {
					sep[x] = pos[x] - s.positions[j*s.dim+x]
				}
				s.Box.MinimumImage(sep)
				var normSqd float64
				for x := 0; x < s.dim; x++ {
					normSqd += sep[x] * sep[x]
				}
				interacts = normSqd < s.sqCutOff
			}
			if interacts {
				if k == len(out) {
					panic(ErrTooManyInteractions)
				}
				out[k] = j
				k++
			}
		}
	}
	return k
}

//PostMove commits the given position and orientation for particle i and
//keeps the cell list current.
func (s *System) PostMove(i int, pos, orient []float64) {
	copy(s.Position(i), pos)
	copy(s.Orientation(i), orient)
	s.Cells.Update(i, pos)
}

//SystemEnergy freshly computes the total interaction energy of the system,
//halving the per-particle sum to undo the pair double count.
func (s *System) SystemEnergy() float64 {
	var energy float64
	for i := 0; i < s.n; i++ {
		energy += s.Energy(i, s.Position(i), s.Orientation(i))
	}
	return energy / 2
}

//separationSqd puts the minimum-image separation of the two positions in
//sep and returns its squared norm.
func (s *System) separationSqd(pos1, pos2, sep []float64) float64 {
	for x := 0; x < s.dim; x++ {
		sep[x] = pos1[x] - pos2[x]
	}
	s.Box.MinimumImage(sep)
	var normSqd float64
	for x := 0; x < s.dim; x++ {
		normSqd += sep[x] * sep[x]
	}
	return normSqd
}

//NewSquareWell returns a square-well fluid: hard cores of unit diameter
//with an attractive well of the given depth out to the interaction range.
func NewSquareWell(n int, box *vec.Box, cells *cell.List, maxInteractions int, energy, irange float64) *System {
	s := newSystem(n, box, cells, maxInteractions, energy, irange)
	sep := make([]float64, s.dim)
	s.pair = func(i int, posi, _ []float64, j int, posj, _ []float64) float64 {
		normSqd := s.separationSqd(posi, posj, sep)
		if normSqd < 1 {
			return Inf
		}
		if normSqd < s.sqCutOff {
			return -s.InteractionEnergy
		}
		return 0
	}
	return s
}

//NewLennardJones returns a Lennard-Jones fluid with the potential truncated
//and shifted to zero at the interaction range. The repulsive branch is
//finite, so the engine should be configured with IsRepulsive set.
func NewLennardJones(n int, box *vec.Box, cells *cell.List, maxInteractions int, energy, irange float64) *System {
	s := newSystem(n, box, cells, maxInteractions, energy, irange)
	shift := math.Pow(1/irange, 12) - math.Pow(1/irange, 6)
	sep := make([]float64, s.dim)
	s.pair = func(i int, posi, _ []float64, j int, posj, _ []float64) float64 {
		normSqd := s.separationSqd(posi, posj, sep)
		if normSqd >= s.sqCutOff {
			return 0
		}
		r2Inv := 1.0 / normSqd
		r6Inv := r2Inv * r2Inv * r2Inv
		return 4.0 * s.InteractionEnergy * (r6Inv*r6Inv - r6Inv - shift)
	}
	return s
}

//NewHardSphere returns hard spheres (discs in 2D) of unit diameter with no
//attraction. The interaction range used for the cell list and neighbour
//enumeration is the contact distance.
func NewHardSphere(n int, box *vec.Box, cells *cell.List, maxInteractions int) *System {
	s := newSystem(n, box, cells, maxInteractions, 0, 1)
	sep := make([]float64, s.dim)
	s.pair = func(i int, posi, _ []float64, j int, posj, _ []float64) float64 {
		if s.separationSqd(posi, posj, sep) < 1 {
			return Inf
		}
		return 0
	}
	return s
}

//NewPatchyDisc returns the two-dimensional patchy disc model: hard discs
//decorated with nPatches regularly spaced attractive patches on the disc
//surface (one radius from the centre) whose placement follows the particle
//orientation. Patches within the
//interaction range of each other bond with the given energy. Neighbours are
//listed by a negative pair energy, so bonding, not distance, defines the
//interaction graph.
func NewPatchyDisc(n int, box *vec.Box, cells *cell.List, nPatches int, energy, irange float64) (*System, error) {
	if box.Dimension != 2 {
		return nil, Error{fmt.Sprintf("patchy discs are only valid in two dimensions, not %d", box.Dimension), []string{"NewPatchyDisc"}, true}
	}
	s := newSystem(n, box, cells, nPatches, energy, irange)
	s.byEnergy = true

	separation := 2 * math.Pi / float64(nPatches)
	cosTheta := make([]float64, nPatches)
	sinTheta := make([]float64, nPatches)
	for i := 0; i < nPatches; i++ {
		cosTheta[i] = math.Cos(float64(i) * separation)
		sinTheta[i] = math.Sin(float64(i) * separation)
	}

	sep := make([]float64, 2)
	s.pair = func(i int, posi, orienti []float64, j int, posj, orientj []float64) float64 {
		if s.separationSqd(posi, posj, sep) < 1 {
			return Inf
		}
		var energy float64
		var c1, c2 [2]float64
		for a := 0; a < nPatches; a++ {
			c1[0] = posi[0] + 0.5*(orienti[0]*cosTheta[a]-orienti[1]*sinTheta[a])
			c1[1] = posi[1] + 0.5*(orienti[0]*sinTheta[a]+orienti[1]*cosTheta[a])
			for b := 0; b < nPatches; b++ {
				c2[0] = posj[0] + 0.5*(orientj[0]*cosTheta[b]-orientj[1]*sinTheta[b])
				c2[1] = posj[1] + 0.5*(orientj[0]*sinTheta[b]+orientj[1]*cosTheta[b])
				sep[0] = c1[0] - c2[0]
				sep[1] = c1[1] - c2[1]
				s.Box.MinimumImage(sep)
				if sep[0]*sep[0]+sep[1]*sep[1] < s.sqCutOff {
					energy -= s.InteractionEnergy
				}
			}
		}
		return energy
	}
	return s, nil
}

//Error is the error type for the potential package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds dec to the decoration trail and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrTooManyInteractions = PanicMsg("goVMMC/potential: maximum number of interactions exceeded")
