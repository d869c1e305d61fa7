package vmmc

import (
	"math"

	"github.com/rmera/govmmc/vec"
)

//testModel is a brute-force Model over its own particle storage, with a
//pluggable pair potential. Deliberately free of cell lists so the tests
//exercise the engine, not the neighbour indexing.
type testModel struct {
	dim    int
	box    *vec.Box
	pos    [][]float64
	orient [][]float64
	pair   func(rSqd float64) float64

	postMoves int //total PostMove invocations
}

func newTestModel(box *vec.Box, coords []float64, pair func(rSqd float64) float64) *testModel {
	d := box.Dimension
	n := len(coords) / d
	m := &testModel{dim: d, box: box, pair: pair}
	for i := 0; i < n; i++ {
		p := make([]float64, d)
		copy(p, coords[i*d:(i+1)*d])
		o := make([]float64, d)
		o[0] = 1
		m.pos = append(m.pos, p)
		m.orient = append(m.orient, o)
	}
	return m
}

func (m *testModel) flatCoords() []float64 {
	out := make([]float64, 0, len(m.pos)*m.dim)
	for _, p := range m.pos {
		out = append(out, p...)
	}
	return out
}

func (m *testModel) flatOrients() []float64 {
	out := make([]float64, 0, len(m.orient)*m.dim)
	for _, o := range m.orient {
		out = append(out, o...)
	}
	return out
}

func (m *testModel) sepSqd(a, b []float64) float64 {
	sep := make([]float64, m.dim)
	for i := range sep {
		sep[i] = a[i] - b[i]
	}
	m.box.MinimumImage(sep)
	var s float64
	for _, v := range sep {
		s += v * v
	}
	return s
}

func (m *testModel) Energy(i int, pos, orient []float64) float64 {
	var e float64
	for j := range m.pos {
		if j == i {
			continue
		}
		e += m.pair(m.sepSqd(pos, m.pos[j]))
		if e > 1e6 {
			return math.Inf(1)
		}
	}
	return e
}

func (m *testModel) PairEnergy(i int, posi, _ []float64, j int, posj, _ []float64) float64 {
	return m.pair(m.sepSqd(posi, posj))
}

func (m *testModel) Interactions(i int, pos, _ []float64, out []int) int {
	k := 0
	for j := range m.pos {
		if j == i {
			continue
		}
		if m.pair(m.sepSqd(pos, m.pos[j])) != 0 {
			out[k] = j
			k++
		}
	}
	return k
}

func (m *testModel) PostMove(i int, pos, orient []float64) {
	copy(m.pos[i], pos)
	copy(m.orient[i], orient)
	m.postMoves++
}

//squareWellPair returns a square-well pair potential on squared distances.
func squareWellPair(depth, interactionRange float64) func(float64) float64 {
	rc2 := interactionRange * interactionRange
	return func(rSqd float64) float64 {
		if rSqd < 1 {
			return math.Inf(1)
		}
		if rSqd < rc2 {
			return -depth
		}
		return 0
	}
}

//hardCorePair is a pure hard-core potential.
func hardCorePair(rSqd float64) float64 {
	if rSqd < 1 {
		return math.Inf(1)
	}
	return 0
}

//idealPair never interacts.
func idealPair(rSqd float64) float64 { return 0 }

//rampPair returns a finite repulsive ramp growing towards contact, steep
//enough that climbing it forms a link with certainty (in floating point)
//while the reverse link cannot form.
func rampPair(slope, interactionRange float64) func(float64) float64 {
	rc2 := interactionRange * interactionRange
	return func(rSqd float64) float64 {
		if rSqd < rc2 {
			return slope * (rc2 - rSqd)
		}
		return 0
	}
}

func mustNew(model Model, coords, orients []float64, iso []bool, cfg Config) *VMMC {
	v, err := New(model, coords, orients, iso, cfg)
	if err != nil {
		panic(err)
	}
	return v
}
