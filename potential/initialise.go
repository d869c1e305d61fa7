package potential

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

//maxInsertionTrials bounds the attempts to place a single particle before
//RandomConfig gives up on the (too dense) configuration.
const maxInsertionTrials = 10000000

//RandomConfig fills the system with a random configuration free of
//hard-core overlaps: positions uniform in the box, orientations uniform on
//the unit circle/sphere. Particles are inserted one by one, redrawing until
//the insertion does not overlap any earlier particle.
func RandomConfig(s *System, rng *rand.Rand) error {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	sep := make([]float64, s.dim)
	for i := 0; i < s.n; i++ {
		pos := s.Position(i)
		orient := s.Orientation(i)
		trials := 0
		for {
			trials++
			if trials > maxInsertionTrials {
				return Error{"maximum number of trial insertions reached", []string{"RandomConfig"}, true}
			}
			for x := 0; x < s.dim; x++ {
				pos[x] = rng.Float64() * s.Box.Size[x]
			}
			if !s.overlaps(i, pos, sep) {
				break
			}
		}
		var norm float64
		for {
			norm = 0
			for x := 0; x < s.dim; x++ {
				orient[x] = normal.Rand()
				norm += orient[x] * orient[x]
			}
			if norm > 0 {
				break
			}
		}
		norm = 1 / math.Sqrt(norm)
		for x := 0; x < s.dim; x++ {
			orient[x] *= norm
		}
		s.Cells.Insert(i, pos)
	}
	return nil
}

//overlaps tells whether a particle placed at pos overlaps any of the first
//i already-inserted particles. A brute-force scan: the cell list is not yet
//complete during insertion.
func (s *System) overlaps(i int, pos, sep []float64) bool {
	for j := 0; j < i; j++ {
		if s.separationSqd(pos, s.Position(j), sep) < 1 {
			return true
		}
	}
	return false
}
