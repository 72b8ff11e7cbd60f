// Package features computes the scalar board-quality metrics that the
// equity package weighs. Every function is pure: none of them mutate the
// grid they are given.
package features

import (
	"fmt"

	"github.com/domino14/stacker/board"
)

// PillarDepth is the minimum number of contiguous flanked empty rows that
// count as a pillar.
const PillarDepth = 3

// Set is every feature of one simulated placement.
type Set struct {
	Holes            int `yaml:"holes" json:"holes"`
	BlocksAboveHoles int `yaml:"blocks_above_holes" json:"blocks_above_holes"`
	Pillars          int `yaml:"pillars" json:"pillars"`
	MaxHeight        int `yaml:"max_height" json:"max_height"`
	Bumpiness        int `yaml:"bumpiness" json:"bumpiness"`
	RightmostLane    int `yaml:"rightmost_lane" json:"rightmost_lane"`
	LinesCleared     int `yaml:"lines_cleared" json:"lines_cleared"`
}

func (s Set) String() string {
	return fmt.Sprintf("holes=%d bah=%d pillars=%d maxh=%d bump=%d right=%d lines=%d",
		s.Holes, s.BlocksAboveHoles, s.Pillars, s.MaxHeight, s.Bumpiness,
		s.RightmostLane, s.LinesCleared)
}

// Extract computes every feature of g. shape and pos describe the piece
// that was just locked into g; they are only used for MaxHeight.
func Extract(g *board.Grid, shape []board.Point, pos board.Point) Set {
	return Set{
		Holes:            Holes(g),
		BlocksAboveHoles: BlocksAboveHoles(g),
		Pillars:          Pillars(g),
		MaxHeight:        MaxHeight(g.Height(), shape, pos),
		Bumpiness:        Bumpiness(g),
		RightmostLane:    RightmostLane(g),
		LinesCleared:     LinesCleared(g),
	}
}

// Holes counts, per column, the empty cells below the topmost occupied cell.
func Holes(g *board.Grid) int {
	holes := 0
	for x := 0; x < g.Width(); x++ {
		blockFound := false
		for y := 0; y < g.Height(); y++ {
			if g.IsOccupied(x, y) {
				blockFound = true
			} else if blockFound {
				holes++
			}
		}
	}
	return holes
}

// BlocksAboveHoles scans each column from the top. As soon as any empty cell
// has been seen, every occupied cell found after it is counted. Note this
// means the empty cells above the stack already arm the counter.
func BlocksAboveHoles(g *board.Grid) int {
	count := 0
	for x := 0; x < g.Width(); x++ {
		holeFound := false
		for y := 0; y < g.Height(); y++ {
			if !g.IsOccupied(x, y) {
				holeFound = true
			} else if holeFound {
				count++
			}
		}
	}
	return count
}

// Pillars counts vertical runs of empty cells in interior columns that are
// flanked by occupied cells on both the left and the right. A run counts once
// if it is at least PillarDepth deep and ends on an occupied cell or on the
// bottom edge. An empty cell that is not flanked drops the current run.
func Pillars(g *board.Grid) int {
	pillars := 0
	for x := 1; x < g.Width()-1; x++ {
		depth := 0
		inHole := false
		for y := 0; y < g.Height(); y++ {
			if g.IsOccupied(x, y) {
				if inHole && depth >= PillarDepth {
					pillars++
				}
				inHole = false
				depth = 0
				continue
			}
			if g.IsOccupied(x-1, y) && g.IsOccupied(x+1, y) {
				if inHole {
					depth++
				} else {
					inHole = true
					depth = 1
				}
			} else {
				inHole = false
			}
		}
		if inHole && depth >= PillarDepth {
			pillars++
		}
	}
	return pillars
}

// MaxHeight is the height, measured from the bottom edge, of the lowest row
// reached by the placed shape: rows minus the largest y of any of its cells.
// It describes the placement, not the whole stack.
func MaxHeight(rows int, shape []board.Point, pos board.Point) int {
	maxY := 0
	for _, c := range shape {
		maxY = max(maxY, c.Y+pos.Y)
	}
	return rows - maxY
}

// ColumnHeight is the distance from the bottom edge to the topmost occupied
// cell of column x, or 0 for an empty column.
func ColumnHeight(g *board.Grid, x int) int {
	for y := 0; y < g.Height(); y++ {
		if g.IsOccupied(x, y) {
			return g.Height() - y
		}
	}
	return 0
}

// ColumnHeights returns ColumnHeight for every column.
func ColumnHeights(g *board.Grid) []int {
	heights := make([]int, g.Width())
	for x := range heights {
		heights[x] = ColumnHeight(g, x)
	}
	return heights
}

// Bumpiness is the sum of the absolute height differences of neighbouring
// columns.
func Bumpiness(g *board.Grid) int {
	heights := ColumnHeights(g)
	bumpiness := 0
	for i := 0; i < len(heights)-1; i++ {
		d := heights[i] - heights[i+1]
		if d < 0 {
			d = -d
		}
		bumpiness += d
	}
	return bumpiness
}

// RightmostLane counts the occupied cells in the last column.
func RightmostLane(g *board.Grid) int {
	x := g.Width() - 1
	blocks := 0
	for y := 0; y < g.Height(); y++ {
		if g.IsOccupied(x, y) {
			blocks++
		}
	}
	return blocks
}

// LinesCleared counts the full rows of g. It does not clear them.
func LinesCleared(g *board.Grid) int {
	lines := 0
	for y := 0; y < g.Height(); y++ {
		if g.RowFull(y) {
			lines++
		}
	}
	return lines
}
