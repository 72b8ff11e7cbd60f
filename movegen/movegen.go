// Package movegen enumerates every resting placement of a piece on a grid.
// Placements are found by trying each rotation at each column that keeps
// the shape inside the walls, dropping the shape straight down from the
// spawn row, and scoring the board that results.
package movegen

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/features"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/piece"
)

// MoveGenerator is the interface the turn players search through.
type MoveGenerator interface {
	GenAll(g *board.Grid, p *piece.Piece, spawn board.Point) []*move.Placement
	SetPlayRecorder(pf PlayRecorderFunc)
	Plays() []*move.Placement
}

// Generator is the placement search. A Generator is not safe for
// concurrent GenAll calls; use one per goroutine. It may itself fan a
// single search out over several goroutines, see SetThreads.
type Generator struct {
	width, height int

	calculator equity.Calculator
	recorder   PlayRecorderFunc
	threads    int

	// recordMu guards plays while a threaded search is recording.
	recordMu sync.Mutex
	plays    []*move.Placement

	scratch sync.Pool
}

// candidate is one (rotation, column) slot of the enumeration.
type candidate struct {
	rotation int
	column   int
	index    int
}

func NewGenerator(width, height int, calc equity.Calculator) *Generator {
	gen := &Generator{
		width:      width,
		height:     height,
		calculator: calc,
		recorder:   AllPlaysRecorder,
		threads:    1,
	}
	gen.scratch.New = func() any {
		return board.MakeGrid(width, height)
	}
	return gen
}

func (gen *Generator) SetEquityCalculator(calc equity.Calculator) {
	gen.calculator = calc
}

func (gen *Generator) EquityCalculator() equity.Calculator {
	return gen.calculator
}

func (gen *Generator) SetPlayRecorder(pf PlayRecorderFunc) {
	gen.recorder = pf
}

// SetThreads sets how many goroutines one search uses. Values below 1 are
// treated as 1.
func (gen *Generator) SetThreads(n int) {
	gen.threads = max(n, 1)
}

func (gen *Generator) Plays() []*move.Placement {
	return gen.plays
}

func (gen *Generator) Dims() (int, int) {
	return gen.width, gen.height
}

func (gen *Generator) candidates(p *piece.Piece) []candidate {
	var cs []candidate
	for rot := 0; rot < p.NumRotations(); rot++ {
		minX, maxX := p.XRange(rot)
		for col := -minX; col <= gen.width-1-maxX; col++ {
			cs = append(cs, candidate{rotation: rot, column: col, index: len(cs)})
		}
	}
	return cs
}

// GenAll returns every legal resting placement of p, in enumeration order:
// rotation ascending, then column ascending. Each shape is tested at
// spawn's row and dropped from there; spawn's column plays no part in the
// search. A grid whose dimensions differ from the generator's panics. The
// grid itself is never modified. The returned slice is reused by the next
// call; the placements in it are not.
func (gen *Generator) GenAll(g *board.Grid, p *piece.Piece, spawn board.Point) []*move.Placement {
	g.MustMatch(gen.width, gen.height)
	gen.plays = gen.plays[:0]
	cs := gen.candidates(p)
	if gen.threads > 1 {
		gen.genThreaded(g, p, spawn.Y, cs)
	} else {
		for _, c := range cs {
			if pl := gen.evaluate(g, p, spawn.Y, c); pl != nil {
				gen.recorder(gen, pl)
			}
		}
	}
	if len(gen.plays) > 0 {
		log.Debug().Str("piece", p.String()).Int("nplays", len(gen.plays)).
			Msg("placements-generated")
	}
	return gen.plays
}

// evaluate simulates one candidate. It returns nil if the shape collides
// at the spawn row or cannot rest anywhere.
func (gen *Generator) evaluate(g *board.Grid, p *piece.Piece, spawnRow int, c candidate) *move.Placement {
	shape := p.Shape(c.rotation)
	start := board.Point{X: c.column, Y: spawnRow}
	if g.Collides(shape, start) {
		return nil
	}
	rest := g.DropPosition(shape, start)
	if g.Collides(shape, rest) {
		return nil
	}
	sim := gen.scratch.Get().(*board.Grid)
	sim.CopyFrom(g)
	sim.Place(shape, rest, p.Color())
	fs := features.Extract(sim, shape, rest)
	pl := move.NewPlacement(p, c.rotation, rest, sim, fs, c.index)
	pl.SetCost(gen.calculator.Cost(fs))
	return pl
}

// recycle hands a discarded placement's grid back to the scratch pool.
func (gen *Generator) recycle(pl *move.Placement) {
	if pl.Grid() != nil {
		gen.scratch.Put(pl.Grid())
	}
}

// Reset drops the plays of the previous search. Their grids go back to the
// scratch pool, so none of them may be used afterwards.
func (gen *Generator) Reset() {
	for _, pl := range gen.plays {
		gen.recycle(pl)
	}
	gen.plays = gen.plays[:0]
}

func (gen *Generator) String() string {
	return fmt.Sprintf("<Generator %dx%d threads=%d>", gen.width, gen.height, gen.threads)
}
