package potential

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/rmera/govmmc/cell"
	"github.com/rmera/govmmc/vec"
)

func makeSystem(t *testing.T, n int, l float64, build func(*vec.Box, *cell.List) *System) *System {
	t.Helper()
	box, err := vec.NewBox([]float64{l, l})
	if err != nil {
		t.Fatal(err)
	}
	cells, err := cell.New(n, box.Size, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	return build(box, cells)
}

func TestSquareWell(t *testing.T) {
	s := makeSystem(t, 2, 10, func(b *vec.Box, c *cell.List) *System {
		return NewSquareWell(2, b, c, 5, 3.0, 1.1)
	})
	copy(s.Position(0), []float64{5, 5})
	copy(s.Position(1), []float64{6.05, 5})
	s.Orientation(0)[0] = 1
	s.Orientation(1)[0] = 1
	s.Cells.Insert(0, s.Position(0))
	s.Cells.Insert(1, s.Position(1))

	e := s.PairEnergy(0, s.Position(0), s.Orientation(0), 1, s.Position(1), s.Orientation(1))
	if e != -3.0 {
		t.Error("expected a bond of -3, got", e)
	}
	//symmetry
	e2 := s.PairEnergy(1, s.Position(1), s.Orientation(1), 0, s.Position(0), s.Orientation(0))
	if e != e2 {
		t.Error("pair energy not symmetric:", e, e2)
	}
	//hard core
	if !math.IsInf(s.PairEnergy(0, []float64{5, 5}, nil, 1, []float64{5.5, 5}, nil), 1) {
		t.Error("overlap did not return the sentinel")
	}
	//the system energy halves the per-particle double count
	if se := s.SystemEnergy(); se != -3.0 {
		t.Error("wrong system energy:", se)
	}
	//neighbour listing
	out := make([]int, 5)
	if k := s.Interactions(0, s.Position(0), s.Orientation(0), out); k != 1 || out[0] != 1 {
		t.Error("wrong interactions:", out[:k])
	}
}

func TestLennardJonesShift(t *testing.T) {
	s := makeSystem(t, 2, 20, func(b *vec.Box, c *cell.List) *System {
		return NewLennardJones(2, b, c, 15, 1.0, 2.5)
	})
	//at the cut-off the shifted potential vanishes
	e := s.PairEnergy(0, []float64{5, 5}, nil, 1, []float64{7.5, 5}, nil)
	if e != 0 {
		t.Error("potential not zero at the cut-off:", e)
	}
	just := s.PairEnergy(0, []float64{5, 5}, nil, 1, []float64{7.49, 5}, nil)
	if math.Abs(just) > 1e-3 {
		t.Error("potential discontinuous at the cut-off:", just)
	}
	//the minimum sits near r = 2^(1/6) with depth about epsilon
	emin := s.PairEnergy(0, []float64{5, 5}, nil, 1, []float64{5 + math.Pow(2, 1.0/6.0), 5}, nil)
	if math.Abs(emin+1) > 0.02 {
		t.Error("wrong well depth:", emin)
	}
	//strong repulsion at short distance, but finite
	rep := s.PairEnergy(0, []float64{5, 5}, nil, 1, []float64{5.8, 5}, nil)
	if rep <= 0 || math.IsInf(rep, 1) {
		t.Error("unexpected repulsive branch:", rep)
	}
}

func TestPatchyDiscValidation(t *testing.T) {
	box, _ := vec.NewBox([]float64{10, 10, 10})
	cells, _ := cell.New(2, box.Size, 1.1)
	if _, err := NewPatchyDisc(2, box, cells, 3, 5, 1.1); err == nil {
		t.Error("3D patchy discs accepted")
	}
}

func TestPatchyDiscBonding(t *testing.T) {
	s := makeSystem(t, 2, 10, func(b *vec.Box, c *cell.List) *System {
		sys, err := NewPatchyDisc(2, b, c, 4, 5.0, 0.3)
		if err != nil {
			t.Fatal(err)
		}
		return sys
	})
	//two discs at contact with patches pointing at each other bond
	pos1 := []float64{5, 5}
	pos2 := []float64{6.02, 5}
	or1 := []float64{1, 0}  //patch 0 towards +x
	or2 := []float64{-1, 0} //patch 0 towards -x
	e := s.PairEnergy(0, pos1, or1, 1, pos2, or2)
	if e >= 0 {
		t.Error("aligned patches did not bond:", e)
	}
	if e != s.PairEnergy(1, pos2, or2, 0, pos1, or1) {
		t.Error("patchy pair energy not symmetric")
	}
	//rotate one disc 45 degrees: patches misaligned, no bond
	s2 := math.Sqrt2 / 2
	e = s.PairEnergy(0, pos1, []float64{s2, s2}, 1, pos2, or2)
	if e != 0 {
		t.Error("misaligned patches bonded:", e)
	}
	//overlap still hard
	if !math.IsInf(s.PairEnergy(0, pos1, or1, 1, []float64{5.5, 5}, or2), 1) {
		t.Error("overlapping discs not rejected")
	}
}

func TestRandomConfig(t *testing.T) {
	const n = 64
	box, _ := vec.NewBox([]float64{20, 20})
	cells, err := cell.New(n, box.Size, 1.1)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSquareWell(n, box, cells, 10, 1.0, 1.1)
	rng := rand.New(rand.NewSource(11))
	if err := RandomConfig(s, rng); err != nil {
		t.Fatal(err)
	}
	sep := make([]float64, 2)
	for i := 0; i < n; i++ {
		pos := s.Position(i)
		if !box.Inside(pos) {
			t.Fatal("particle placed outside the box:", pos)
		}
		o := s.Orientation(i)
		if math.Abs(math.Hypot(o[0], o[1])-1) > 1e-10 {
			t.Fatal("orientation not unit:", o)
		}
		for j := 0; j < i; j++ {
			if s.separationSqd(pos, s.Position(j), sep) < 1 {
				t.Fatalf("particles %d and %d overlap", i, j)
			}
		}
		if s.Cells.Cell(i) != s.Cells.Index(pos) {
			t.Fatal("cell list out of sync after initialisation")
		}
	}
}
