//Package traj writes xyz trajectories of vmmc simulations, plainly or
//compressed with zstd, plus a VMD script to visualise them. Frames store
//positions only; two-dimensional systems pad the third coordinate with
//zero so VMD reads them unchanged.
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//XYZW writes an xyz trajectory, one frame per call to WNext.
type XYZW struct {
	f         *os.File
	h         io.Writer
	zw        *zstd.Encoder
	bw        *bufio.Writer
	natoms    int
	filename  string
	writeable bool
}

//NewWriter opens an xyz trajectory writer for natoms particles. If the file
//name ends in ".zst" frames are compressed with zstd; the optional
//compressionLevel (1 fastest, 4 best) only applies then.
func NewWriter(name string, natoms int, compressionLevel ...int) (*XYZW, error) {
	x := new(XYZW)
	x.natoms = natoms
	x.filename = name
	f, err := os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	x.f = f
	x.bw = bufio.NewWriter(f)
	x.h = x.bw
	if strings.HasSuffix(name, ".zst") {
		level := zstd.SpeedDefault
		if len(compressionLevel) > 0 {
			level = zstd.EncoderLevel(compressionLevel[0])
		}
		zw, err := zstd.NewWriter(x.bw, zstd.WithEncoderLevel(level))
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
		}
		x.zw = zw
		x.h = zw
	}
	x.writeable = true
	return x, nil
}

//Len returns the number of atoms per frame.
func (x *XYZW) Len() int { return x.natoms }

//WNext appends one frame. positions is the flat row-major position array
//with dimension components per particle.
func (x *XYZW) WNext(dimension int, positions []float64) error {
	if !x.writeable {
		return Error{"trajectory not open for writing", x.filename, []string{"WNext"}, true}
	}
	if len(positions) != x.natoms*dimension {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", len(positions), x.natoms*dimension), x.filename, []string{"WNext"}, true}
	}
	fmt.Fprintf(x.h, "%d\n\n", x.natoms)
	for i := 0; i < x.natoms; i++ {
		z := 0.0
		if dimension == 3 {
			z = positions[i*dimension+2]
		}
		fmt.Fprintf(x.h, "0 %5.4f %5.4f %5.4f\n", positions[i*dimension], positions[i*dimension+1], z)
	}
	return nil
}

//Close flushes and closes the trajectory. Safe to call on a nil writer.
func (x *XYZW) Close() {
	if x == nil || !x.writeable {
		return
	}
	if x.zw != nil {
		x.zw.Close()
	}
	x.bw.Flush()
	x.f.Close()
	x.writeable = false
}

//VMDScript writes a VMD Tcl script, vmd.tcl in the given directory, that
//sets up lights, an orthographic view, van der Waals drawing with the
//particle radius, and a wireframe of the simulation box.
func VMDScript(dir string, boxSize []float64) error {
	f, err := os.Create(dir + "/vmd.tcl")
	if err != nil {
		return Error{err.Error(), "vmd.tcl", []string{"VMDScript"}, true}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprint(w, "light 0 on\nlight 1 on\nlight 2 off\nlight 3 off\n")
	fmt.Fprint(w, "axes location off\nstage location off\n")
	fmt.Fprint(w, "display projection orthographic\n")
	fmt.Fprint(w, "mol modstyle 0 0 VDW 1 30\n")
	fmt.Fprint(w, "set sel [atomselect top \"name X\"]\n")
	fmt.Fprint(w, "atomselect0 set radius 0.5\n")
	fmt.Fprint(w, "color Name X blue\n")
	fmt.Fprint(w, "display depthcue off\n")

	lz := 0.0
	if len(boxSize) == 3 {
		lz = boxSize[2]
	}
	lx, ly := boxSize[0], boxSize[1]
	corners := [][2][3]float64{
		{{0, 0, 0}, {lx, 0, 0}}, {{0, 0, 0}, {0, ly, 0}},
		{{lx, 0, 0}, {lx, ly, 0}}, {{0, ly, 0}, {lx, ly, 0}},
	}
	if lz > 0 {
		corners = append(corners,
			[2][3]float64{{0, 0, lz}, {lx, 0, lz}}, [2][3]float64{{0, 0, lz}, {0, ly, lz}},
			[2][3]float64{{lx, 0, lz}, {lx, ly, lz}}, [2][3]float64{{0, ly, lz}, {lx, ly, lz}},
			[2][3]float64{{0, 0, 0}, {0, 0, lz}}, [2][3]float64{{lx, 0, 0}, {lx, 0, lz}},
			[2][3]float64{{0, ly, 0}, {0, ly, lz}}, [2][3]float64{{lx, ly, 0}, {lx, ly, lz}})
	}
	for _, c := range corners {
		fmt.Fprintf(w, "draw line {%f %f %f} {%f %f %f}\n",
			c[0][0], c[0][1], c[0][2], c[1][0], c[1][1], c[1][2])
	}
	return nil
}

//Errors

//Error is the error type for the traj package, decorated with the file name
//it refers to.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string { return fmt.Sprintf("%s (%s)", err.message, err.filename) }

//Decorate adds dec to the decoration trail and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }
