/*
 * vec.go, part of govmmc.
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

//Package vec provides small dimension-agnostic vector helpers and the
//periodic simulation box used by the vmmc engine. A "vector" here is a plain
//[]float64 of length 2 or 3; the functions operate componentwise so the same
//code path serves both dimensionalities.
package vec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	return math.Sqrt(floats.Dot(v, v))
}

//Normalize scales v in place to unit norm. It panics on a zero vector.
func Normalize(v []float64) {
	n := Norm(v)
	if n == 0 {
		panic(ErrZeroVector)
	}
	floats.Scale(1/n, v)
}

//Rotate2D puts in out the displacement that rotating v by angle radians
//(counterclockwise, about the origin) adds to v, so that v+out is the rotated
//vector.
func Rotate2D(v []float64, angle float64, out []float64) {
	c := math.Cos(angle)
	s := math.Sin(angle)
	out[0] = (v[0]*c - v[1]*s) - v[0]
	out[1] = (v[0]*s + v[1]*c) - v[1]
}

//Rotate3D puts in out the displacement that rotating v by angle radians about
//the unit axis adds to v. The rotation vector construction follows Beard and
//Schlick, Biophys. J. 85, 2973 (2003).
func Rotate3D(v, axis []float64, angle float64, out []float64) {
	c := math.Cos(angle)
	s := math.Sin(angle)
	d := floats.Dot(v, axis)
	out[0] = (v[0]-axis[0]*d)*(c-1) + (axis[1]*v[2]-axis[2]*v[1])*s
	out[1] = (v[1]-axis[1]*d)*(c-1) + (axis[2]*v[0]-axis[0]*v[2])*s
	out[2] = (v[2]-axis[2]*d)*(c-1) + (axis[0]*v[1]-axis[1]*v[0])*s
}

//Rotate puts in out the rotation displacement for v, dispatching on the
//dimension: axis is ignored for len(v)==2.
func Rotate(v, axis []float64, angle float64, out []float64) {
	if len(v) == 3 {
		Rotate3D(v, axis, angle, out)
	} else {
		Rotate2D(v, angle, out)
	}
}

//Box is a D-dimensional periodic simulation box.
type Box struct {
	Size      []float64
	Dimension int
}

//NewBox returns a periodic box with the given side lengths. The dimension is
//taken from len(size) and must be 2 or 3, with every side positive.
func NewBox(size []float64) (*Box, error) {
	d := len(size)
	if d != 2 && d != 3 {
		return nil, Error{fmt.Sprintf("box dimension must be 2 or 3, not %d", d), []string{"NewBox"}, true}
	}
	for i, v := range size {
		if v <= 0 {
			return nil, Error{fmt.Sprintf("box side %d is not positive: %f", i, v), []string{"NewBox"}, true}
		}
	}
	b := new(Box)
	b.Size = make([]float64, d)
	copy(b.Size, size)
	b.Dimension = d
	return b, nil
}

//MinimumImage replaces sep in place by its minimum image, the representative
//of the displacement closest to the origin under the box periodicity.
func (b *Box) MinimumImage(sep []float64) {
	for i, L := range b.Size {
		sep[i] -= L * math.Round(sep[i]/L)
	}
}

//Wrap folds pos in place into the primary image, each component in [0, L).
func (b *Box) Wrap(pos []float64) {
	for i, L := range b.Size {
		pos[i] -= L * math.Floor(pos[i]/L)
		//Floor can still land exactly on L when pos is a tiny negative.
		if pos[i] >= L {
			pos[i] -= L
		}
	}
}

//Inside tells whether every component of pos lies in [0, L).
func (b *Box) Inside(pos []float64) bool {
	for i, L := range b.Size {
		if pos[i] < 0 || pos[i] >= L {
			return false
		}
	}
	return true
}

//Errors

//Error is the error type for the vec package, with the same shape as the
//parent package's.
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

//PanicMsg is a message used for panics, even though it does satisfy the
//error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrZeroVector = PanicMsg("goVMMC/vec: cannot normalize a zero vector")
	ErrShape      = PanicMsg("goVMMC/vec: dimension mismatch")
)
