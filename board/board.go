// Package board contains the Grid: the fixed-size matrix of cells that
// tracks locked blocks. It also owns the collision rule shared by the
// placement search, the drop simulation and live play.
package board

import (
	"fmt"

	"github.com/cespare/xxhash"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// A Point is an (x, y) pair. x grows to the right and y grows downward, so
// row 0 is the top of the grid. It is used both for cell offsets within a
// piece shape and for piece positions on the grid.
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Grid is a width x height matrix of cells. Its dimensions never change
// after construction.
type Grid struct {
	width  int
	height int
	// cells is row-major: cells[y*width+x]
	cells []Color
}

// MakeGrid makes an empty grid with the given dimensions.
func MakeGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid grid dimensions %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
}

// MakeDefaultGrid makes the standard 10x20 grid.
func MakeDefaultGrid() *Grid {
	return MakeGrid(DefaultWidth, DefaultHeight)
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// InBounds returns true if the x, y coordinates are inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at x, y. It panics if the coordinates are outside
// the grid.
func (g *Grid) Get(x, y int) Color {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("cell (%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return g.cells[y*g.width+x]
}

// Set sets the cell at x, y.
func (g *Grid) Set(x, y int, c Color) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("cell (%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	g.cells[y*g.width+x] = c
}

func (g *Grid) IsOccupied(x, y int) bool {
	return g.Get(x, y) != Empty
}

// Copy returns a deep copy of the grid.
func (g *Grid) Copy() *Grid {
	ng := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Color, len(g.cells)),
	}
	copy(ng.cells, g.cells)
	return ng
}

// CopyFrom copies the contents of another grid of the same dimensions into
// this one, so that scratch grids can be reused without allocating.
func (g *Grid) CopyFrom(o *Grid) {
	g.MustMatch(o.width, o.height)
	copy(g.cells, o.cells)
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Equals returns true if both grids have the same dimensions and cells.
func (g *Grid) Equals(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// MustMatch panics if the grid does not have the given dimensions. Passing a
// grid of the wrong size to the engine is a programming error.
func (g *Grid) MustMatch(width, height int) {
	if g.width != width || g.height != height {
		panic(fmt.Sprintf("grid is %dx%d, expected %dx%d", g.width, g.height,
			width, height))
	}
}

// Fingerprint hashes the dimensions and cell contents of the grid.
func (g *Grid) Fingerprint() uint64 {
	buf := make([]byte, 0, len(g.cells)+2)
	buf = append(buf, byte(g.width), byte(g.height))
	for _, c := range g.cells {
		buf = append(buf, byte(c))
	}
	return xxhash.Sum64(buf)
}

// RowFull returns true if every cell in row y is occupied.
func (g *Grid) RowFull(y int) bool {
	row := g.cells[y*g.width : (y+1)*g.width]
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearLines removes full rows, shifts everything above them down and
// inserts empty rows at the top. It returns the number of rows removed.
func (g *Grid) ClearLines() int {
	cleared := 0
	// Walk from the bottom up, copying each surviving row down by the number
	// of full rows seen so far.
	for y := g.height - 1; y >= 0; y-- {
		if g.RowFull(y) {
			cleared++
			continue
		}
		if cleared > 0 {
			copy(g.cells[(y+cleared)*g.width:(y+cleared+1)*g.width],
				g.cells[y*g.width:(y+1)*g.width])
		}
	}
	for i := 0; i < cleared*g.width; i++ {
		g.cells[i] = Empty
	}
	return cleared
}

// Collides returns true if the shape, placed at pos, leaves the grid
// horizontally, goes below the bottom row, or overlaps an occupied cell.
// Cells above the top of the grid (y < 0) never collide.
func (g *Grid) Collides(shape []Point, pos Point) bool {
	for _, off := range shape {
		x := off.X + pos.X
		y := off.Y + pos.Y
		if x < 0 || x >= g.width || y >= g.height {
			return true
		}
		if y >= 0 && g.cells[y*g.width+x] != Empty {
			return true
		}
	}
	return false
}

// DropPosition starts at pos and moves the shape down one row at a time
// until the next row down would collide. It returns the last position that
// did not collide. pos itself is not checked.
func (g *Grid) DropPosition(shape []Point, pos Point) Point {
	for !g.Collides(shape, Point{pos.X, pos.Y + 1}) {
		pos.Y++
	}
	return pos
}

// Place writes the shape's cells into the grid at pos with the given
// colour. Cells above the top of the grid are discarded.
func (g *Grid) Place(shape []Point, pos Point, c Color) {
	for _, off := range shape {
		x := off.X + pos.X
		y := off.Y + pos.Y
		if y < 0 {
			continue
		}
		g.Set(x, y, c)
	}
}

// TilesPlaced returns the number of occupied cells.
func (g *Grid) TilesPlaced() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// IsEmpty returns true if no cell is occupied.
func (g *Grid) IsEmpty() bool {
	return g.TilesPlaced() == 0
}
