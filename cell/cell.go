//Package cell implements a periodic cell list for fixed-radius neighbour
//queries in two or three dimensions. It backs the neighbour enumeration of
//the demonstration potentials; the vmmc engine itself is agnostic to how the
//Model finds neighbours.
package cell

import "fmt"

//List is a periodic cell list. Cells are at least as wide as the interaction
//range along every axis, so all neighbours of a particle live in the 9 (2D)
//or 27 (3D) cells around it.
type List struct {
	Dimension    int
	CellsPerAxis []int
	Spacing      []float64
	NumCells     int

	maxParticles int
	tally        []int
	parts        [][]int
	neighbours   [][]int

	cellOf    []int //cell index per particle, -1 before insertion
	posInCell []int //slot of the particle in its cell
}

//New builds a cell list for a periodic box of the given side lengths and
//interaction range, able to hold nParticles particles. Every axis must fit
//at least three cells, otherwise the neighbour stencil would wrap onto
//itself. Queries made at positions displaced from the committed ones (as
//the vmmc engine does for trial states) are only exhaustive if the given
//range carries a skin of at least the maximum trial displacement.
func New(nParticles int, boxSize []float64, interactionRange float64) (*List, error) {
	d := len(boxSize)
	if d != 2 && d != 3 {
		return nil, Error{fmt.Sprintf("dimension must be 2 or 3, not %d", d), []string{"New"}, true}
	}
	if interactionRange <= 0 {
		return nil, Error{fmt.Sprintf("interaction range must be positive, not %f", interactionRange), []string{"New"}, true}
	}
	c := new(List)
	c.Dimension = d
	c.CellsPerAxis = make([]int, d)
	c.Spacing = make([]float64, d)
	for x := 0; x < d; x++ {
		n := int(boxSize[x] / interactionRange)
		if n < 3 {
			return nil, Error{fmt.Sprintf("simulation box too small for cell lists: %d cells along axis %d", n, x), []string{"New"}, true}
		}
		c.CellsPerAxis[x] = n
		c.Spacing[x] = boxSize[x] / float64(n)
	}

	c.NumCells = c.CellsPerAxis[0] * c.CellsPerAxis[1]
	if d == 3 {
		c.NumCells *= c.CellsPerAxis[2]
	}

	//Estimate the cell capacity from the cell volume (diameter is one),
	//with a buffer in case particles can overlap.
	vol := c.Spacing[0] * c.Spacing[1]
	sphere := 3.14159265358979 * 0.25
	if d == 3 {
		vol *= c.Spacing[2]
		sphere = (4.0 / 3.0) * 3.14159265358979 * 0.125
	}
	c.maxParticles = int(vol/sphere) + 10

	c.tally = make([]int, c.NumCells)
	c.parts = make([][]int, c.NumCells)
	c.neighbours = make([][]int, c.NumCells)
	for m := 0; m < c.NumCells; m++ {
		c.parts[m] = make([]int, c.maxParticles)
	}
	c.buildStencils()

	c.cellOf = make([]int, nParticles)
	c.posInCell = make([]int, nParticles)
	for i := range c.cellOf {
		c.cellOf[i] = -1
	}
	return c, nil
}

//buildStencils precomputes, for every cell, the indices of the cells in the
//surrounding 3^D block (the cell itself included), with periodic wrapping.
func (c *List) buildStencils() {
	nx := c.CellsPerAxis[0]
	ny := c.CellsPerAxis[1]
	nz := 1
	if c.Dimension == 3 {
		nz = c.CellsPerAxis[2]
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				m := i + nx*j + nx*ny*k
				var nn []int
				for a := -1; a <= 1; a++ {
					x := (i + a + nx) % nx
					for b := -1; b <= 1; b++ {
						y := (j + b + ny) % ny
						if c.Dimension == 2 {
							nn = append(nn, x+y*nx)
							continue
						}
						for g := -1; g <= 1; g++ {
							z := (k + g + nz) % nz
							nn = append(nn, x+y*nx+z*nx*ny)
						}
					}
				}
				c.neighbours[m] = nn
			}
		}
	}
}

//Index returns the cell index for a position in the primary image.
func (c *List) Index(pos []float64) int {
	cx := int(pos[0] / c.Spacing[0])
	cy := int(pos[1] / c.Spacing[1])
	//guard against a coordinate that sits exactly on the upper box edge
	if cx == c.CellsPerAxis[0] {
		cx--
	}
	if cy == c.CellsPerAxis[1] {
		cy--
	}
	cell := cx + cy*c.CellsPerAxis[0]
	if c.Dimension == 3 {
		cz := int(pos[2] / c.Spacing[2])
		if cz == c.CellsPerAxis[2] {
			cz--
		}
		cell += cz * c.CellsPerAxis[0] * c.CellsPerAxis[1]
	}
	return cell
}

//Insert puts particle i, which must not already be in the list, into the
//cell corresponding to pos.
func (c *List) Insert(i int, pos []float64) {
	m := c.Index(pos)
	if c.tally[m] == c.maxParticles {
		panic(ErrCellFull)
	}
	c.parts[m][c.tally[m]] = i
	c.cellOf[i] = m
	c.posInCell[i] = c.tally[m]
	c.tally[m]++
}

//Update moves particle i to the cell corresponding to pos, if it changed.
//The vacated slot is filled by swapping in the last particle of the old
//cell.
func (c *List) Update(i int, pos []float64) {
	m := c.Index(pos)
	old := c.cellOf[i]
	if m == old {
		return
	}
	c.tally[old]--
	last := c.parts[old][c.tally[old]]
	c.parts[old][c.posInCell[i]] = last
	c.posInCell[last] = c.posInCell[i]

	if c.tally[m] == c.maxParticles {
		panic(ErrCellFull)
	}
	c.parts[m][c.tally[m]] = i
	c.cellOf[i] = m
	c.posInCell[i] = c.tally[m]
	c.tally[m]++
}

//Cell returns the cell particle i currently lives in, or -1 if it was never
//inserted.
func (c *List) Cell(i int) int { return c.cellOf[i] }

//Neighbours returns the indices of the cells in the stencil around cell m,
//m itself included. The returned slice is owned by the list.
func (c *List) Neighbours(m int) []int { return c.neighbours[m] }

//Particles returns the indices of the particles currently in cell m. The
//returned slice is owned by the list and valid until the next update.
func (c *List) Particles(m int) []int { return c.parts[m][:c.tally[m]] }

//Reset empties every cell.
func (c *List) Reset() {
	for m := range c.tally {
		c.tally[m] = 0
	}
	for i := range c.cellOf {
		c.cellOf[i] = -1
	}
}

//Error is the error type for the cell package.
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

const ErrCellFull = PanicMsg("goVMMC/cell: maximum number of particles per cell exceeded")
