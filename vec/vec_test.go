package vec

import (
	"math"
	"testing"
)

func TestMinimumImage(t *testing.T) {
	b, err := NewBox([]float64{10, 5})
	if err != nil {
		t.Fatal(err)
	}
	sep := []float64{7, -3}
	b.MinimumImage(sep)
	if sep[0] != -3 || sep[1] != 2 {
		t.Error("wrong minimum image:", sep)
	}
	//idempotence: applying it twice changes nothing
	again := []float64{sep[0], sep[1]}
	b.MinimumImage(again)
	if again[0] != sep[0] || again[1] != sep[1] {
		t.Error("minimum image is not idempotent:", sep, again)
	}
}

func TestWrap(t *testing.T) {
	b, _ := NewBox([]float64{10, 10, 10})
	pos := []float64{-0.5, 10.5, 25}
	b.Wrap(pos)
	want := []float64{9.5, 0.5, 5}
	for i := range pos {
		if math.Abs(pos[i]-want[i]) > 1e-12 {
			t.Error("wrong wrap:", pos)
		}
	}
	if !b.Inside(pos) {
		t.Error("wrapped position reported outside the box")
	}
	//a tiny negative component must not wrap onto the upper edge
	edge := []float64{-1e-18, 5, 5}
	b.Wrap(edge)
	if edge[0] >= 10 || edge[0] < 0 {
		t.Error("edge case wrapped out of range:", edge[0])
	}
}

func TestNewBoxValidation(t *testing.T) {
	if _, err := NewBox([]float64{10}); err == nil {
		t.Error("1D box accepted")
	}
	if _, err := NewBox([]float64{10, -1}); err == nil {
		t.Error("negative side accepted")
	}
	if _, err := NewBox([]float64{1, 2, 3, 4}); err == nil {
		t.Error("4D box accepted")
	}
}

func TestRotate2D(t *testing.T) {
	v := []float64{1, 0}
	disp := make([]float64, 2)
	Rotate2D(v, math.Pi/2, disp)
	rot := []float64{v[0] + disp[0], v[1] + disp[1]}
	if math.Abs(rot[0]) > 1e-12 || math.Abs(rot[1]-1) > 1e-12 {
		t.Error("wrong quarter turn:", rot)
	}
}

func TestRotate3D(t *testing.T) {
	axis := []float64{0, 0, 1}
	v := []float64{1, 0, 0}
	disp := make([]float64, 3)
	Rotate3D(v, axis, math.Pi/2, disp)
	rot := []float64{v[0] + disp[0], v[1] + disp[1], v[2] + disp[2]}
	if math.Abs(rot[0]) > 1e-12 || math.Abs(rot[1]-1) > 1e-12 || math.Abs(rot[2]) > 1e-12 {
		t.Error("wrong quarter turn about z:", rot)
	}

	//rotations preserve the norm, whatever the axis
	axis = []float64{1, 1, 1}
	Normalize(axis)
	v = []float64{0.3, -0.2, 0.9}
	n0 := Norm(v)
	Rotate3D(v, axis, 0.7, disp)
	rot = []float64{v[0] + disp[0], v[1] + disp[1], v[2] + disp[2]}
	if math.Abs(Norm(rot)-n0) > 1e-12 {
		t.Error("rotation changed the norm:", Norm(rot), n0)
	}
	//and a rotation about the vector itself is the identity
	Rotate3D(axis, axis, 1.1, disp)
	if Norm(disp) > 1e-12 {
		t.Error("rotation about itself displaced the vector:", disp)
	}
}

func TestNormalize(t *testing.T) {
	v := []float64{3, 4}
	Normalize(v)
	if math.Abs(Norm(v)-1) > 1e-12 {
		t.Error("not normalized:", v)
	}
	defer func() {
		if recover() == nil {
			t.Error("normalizing a zero vector did not panic")
		}
	}()
	Normalize([]float64{0, 0})
}
