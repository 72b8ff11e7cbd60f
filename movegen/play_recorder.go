package movegen

import (
	"github.com/domino14/stacker/move"
)

// PlayRecorderFunc decides what to do with each legal placement the search
// finds. It may be called from several goroutines during a threaded
// search, but never concurrently: the generator serializes the calls.
type PlayRecorderFunc func(gen *Generator, pl *move.Placement)

func NullPlayRecorder(gen *Generator, pl *move.Placement) {
	gen.recycle(pl)
}

// AllPlaysRecorder keeps every placement.
func AllPlaysRecorder(gen *Generator, pl *move.Placement) {
	gen.plays = append(gen.plays, pl)
}

// TopPlayOnlyRecorder keeps only the cheapest placement seen so far. Of two
// equal-cost placements the one enumerated first is kept.
func TopPlayOnlyRecorder(gen *Generator, pl *move.Placement) {
	if len(gen.plays) == 0 {
		gen.plays = append(gen.plays, pl)
		return
	}
	top := gen.plays[0]
	if pl.Cost() < top.Cost() || (pl.Cost() == top.Cost() && pl.Index() < top.Index()) {
		gen.plays[0] = pl
		gen.recycle(top)
		return
	}
	gen.recycle(pl)
}
