package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/piece"
)

var spawn = board.Point{X: 4, Y: 0}

func newGen() *Generator {
	return NewGenerator(board.DefaultWidth, board.DefaultHeight,
		equity.NewWeightedCalculator(equity.DefaultWeights()))
}

func TestSingleCellLandsOnFloor(t *testing.T) {
	is := is.New(t)
	dot := piece.NewCustom(board.Garbage, []board.Point{{0, 0}})
	plays := newGen().GenAll(board.MakeDefaultGrid(), dot, spawn)
	is.Equal(len(plays), board.DefaultWidth)
	found := false
	for _, p := range plays {
		if p.Column() == 4 {
			found = true
			is.Equal(p.Row(), 19)
			is.Equal(p.Grid().Get(4, 19), board.Garbage)
		}
	}
	is.True(found)
}

func TestEmptyGridIPiece(t *testing.T) {
	is := is.New(t)
	p := piece.Get(piece.I)
	plays := newGen().GenAll(board.MakeDefaultGrid(), p, spawn)

	expected := 0
	for r := 0; r < p.NumRotations(); r++ {
		lo, hi := p.XRange(r)
		expected += (board.DefaultWidth - 1 - hi) - (-lo) + 1
	}
	is.Equal(expected, 17)
	is.Equal(len(plays), expected)

	seen := map[[2]int]bool{}
	lastIdx := -1
	for _, pl := range plays {
		key := [2]int{pl.Rotation(), pl.Column()}
		is.True(!seen[key]) // duplicate rotation/column
		seen[key] = true
		is.True(pl.Index() > lastIdx) // enumeration order
		lastIdx = pl.Index()
	}
}

func TestSearchLeavesGridAlone(t *testing.T) {
	is := is.New(t)
	g, err := board.FromBottomRows(10, 20, []string{
		"..#.......",
		".##..#..##",
		"###.######",
	})
	is.NoErr(err)
	before := g.Copy()
	fp := g.Fingerprint()
	for _, p := range piece.All() {
		newGen().GenAll(g, p, spawn)
	}
	is.True(g.Equals(before))
	is.Equal(g.Fingerprint(), fp)
}

func TestPlacementsScoreTheirGrid(t *testing.T) {
	is := is.New(t)
	g, err := board.FromBottomRows(10, 20, []string{"####.#####"})
	is.NoErr(err)
	p := piece.Get(piece.I)
	plays := newGen().GenAll(g, p, spawn)
	var vertical *move.Placement
	for _, pl := range plays {
		if pl.Rotation() == 1 && pl.Column() == 2 {
			vertical = pl
		}
	}
	is.True(vertical != nil)
	// the vertical I fills the gap and clears the bottom row
	is.Equal(vertical.Features().LinesCleared, 1)
	is.Equal(vertical.Features().Holes, 0)
	is.Equal(vertical.Row(), 16)
}

func TestFullColumnBlocksEverything(t *testing.T) {
	is := is.New(t)
	g := board.MakeGrid(4, 4)
	for x := 0; x < 4; x++ {
		g.Set(x, 0, board.Garbage)
	}
	plays := NewGenerator(4, 4, equity.NewWeightedCalculator(equity.DefaultWeights())).
		GenAll(g, piece.Get(piece.O), board.Point{X: 1, Y: 0})
	is.Equal(len(plays), 0)
}

func TestDimensionMismatchPanics(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	newGen().GenAll(board.MakeGrid(8, 16), piece.Get(piece.T), spawn)
}

func TestTopPlayOnlyRecorder(t *testing.T) {
	is := is.New(t)
	g, err := board.FromBottomRows(10, 20, []string{
		"#.##.#####",
		"#.##.#####",
	})
	is.NoErr(err)
	all := newGen().GenAll(g, piece.Get(piece.T), spawn)
	best := all[0]
	for _, pl := range all[1:] {
		if pl.Cost() < best.Cost() {
			best = pl
		}
	}

	gen := newGen()
	gen.SetPlayRecorder(TopPlayOnlyRecorder)
	top := gen.GenAll(g, piece.Get(piece.T), spawn)
	is.Equal(len(top), 1)
	is.True(top[0].Equals(best))
	is.Equal(top[0].Index(), best.Index())
}

func TestThreadedMatchesSerial(t *testing.T) {
	is := is.New(t)
	g, err := board.FromBottomRows(10, 20, []string{
		"...#......",
		"#..##..#..",
		"##.###.##.",
	})
	is.NoErr(err)
	for _, p := range piece.All() {
		serial := newGen().GenAll(g, p, spawn)
		tgen := newGen()
		tgen.SetThreads(3)
		threaded := tgen.GenAll(g, p, spawn)
		is.Equal(len(threaded), len(serial))
		for i := range serial {
			is.True(threaded[i].Equals(serial[i]))
			is.Equal(threaded[i].Cost(), serial[i].Cost())
			is.True(threaded[i].Grid().Equals(serial[i].Grid()))
		}

		tgen.SetPlayRecorder(TopPlayOnlyRecorder)
		sgen := newGen()
		sgen.SetPlayRecorder(TopPlayOnlyRecorder)
		tt := tgen.GenAll(g, p, spawn)
		st := sgen.GenAll(g, p, spawn)
		is.Equal(tt[0].Index(), st[0].Index())
	}
}

func TestDims(t *testing.T) {
	is := is.New(t)
	w, h := NewGenerator(6, 12, equity.NewWeightedCalculator(equity.DefaultWeights())).Dims()
	is.Equal(w, 6)
	is.Equal(h, 12)
}

func TestNullRecorderKeepsNothing(t *testing.T) {
	is := is.New(t)
	gen := newGen()
	gen.SetPlayRecorder(NullPlayRecorder)
	plays := gen.GenAll(board.MakeDefaultGrid(), piece.Get(piece.T), spawn)
	is.Equal(len(plays), 0)
	is.Equal(len(gen.Plays()), 0)
}

func TestResetDropsPlays(t *testing.T) {
	is := is.New(t)
	gen := newGen()
	gen.GenAll(board.MakeDefaultGrid(), piece.Get(piece.I), spawn)
	is.Equal(len(gen.Plays()), 17)
	gen.Reset()
	is.Equal(len(gen.Plays()), 0)

	// the generator still works with recycled grids
	plays := gen.GenAll(board.MakeDefaultGrid(), piece.Get(piece.O), spawn)
	is.Equal(len(plays), 9)
	for _, pl := range plays {
		is.Equal(pl.Grid().Get(pl.Column(), 19), board.Yellow)
	}
}
