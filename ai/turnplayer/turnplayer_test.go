package turnplayer

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/features"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/piece"
)

var spawn = board.Point{X: 4, Y: 0}

func mk(rot, col int, cost float64, idx int) *move.Placement {
	pl := move.NewPlacement(piece.Get(piece.T), rot, board.Point{X: col, Y: 18}, nil, features.Set{}, idx)
	pl.SetCost(cost)
	return pl
}

func TestSelectBestEmpty(t *testing.T) {
	is := is.New(t)
	is.True(SelectBest(nil) == nil)
	is.True(SelectBest([]*move.Placement{}) == nil)
}

func TestSelectBestTieGoesToEnumerationOrder(t *testing.T) {
	is := is.New(t)
	plays := []*move.Placement{mk(0, 3, 5, 3), mk(1, 0, 2, 8), mk(0, 6, 2, 6), mk(2, 1, 2, 17)}
	best := SelectBest(plays)
	is.Equal(best.Rotation(), 0)
	is.Equal(best.Column(), 6)

	// slice order does not matter, only the enumeration index
	best = SelectBest([]*move.Placement{plays[3], plays[1], plays[2]})
	is.Equal(best.Index(), 6)
}

func TestTopPlays(t *testing.T) {
	is := is.New(t)
	plays := []*move.Placement{mk(0, 3, 5, 3), mk(1, 0, 2, 8), mk(0, 6, 2, 6), mk(2, 1, 1, 17)}
	top := TopPlays(plays, 3)
	is.Equal(len(top), 3)
	is.Equal(top[0].Index(), 17)
	is.Equal(top[1].Index(), 6)
	is.Equal(top[2].Index(), 8)
	is.Equal(len(TopPlays(plays, 10)), 4)
}

func TestBestPlayFillsTheWell(t *testing.T) {
	is := is.New(t)
	g, err := board.FromBottomRows(10, 20, []string{
		"#########.",
		"#########.",
		"#########.",
		"#########.",
	})
	is.NoErr(err)
	p := NewStaticTurnPlayerWithWeights(10, 20, equity.DefaultWeights())
	best, steps, err := p.BestPlay(g, piece.Get(piece.I), spawn, 0)
	is.NoErr(err)
	is.Equal(best.Rotation(), 1)
	is.Equal(best.Column(), 7)
	is.Equal(best.Features().LinesCleared, 4)
	is.Equal(steps, []move.Action{move.RotateCW, move.ShiftRight, move.ShiftRight,
		move.ShiftRight, move.HardDrop})
}

func TestBestPlayNoMoves(t *testing.T) {
	is := is.New(t)
	g := board.MakeGrid(10, 20)
	for x := 0; x < 10; x++ {
		g.Set(x, 0, board.Garbage)
		g.Set(x, 1, board.Garbage)
	}
	p := NewStaticTurnPlayerWithWeights(10, 20, equity.DefaultWeights())
	_, _, err := p.BestPlay(g, piece.Get(piece.T), spawn, 0)
	is.True(errors.Is(err, ErrNoMoves))
}

func TestGenBestMatchesGenerateMoves(t *testing.T) {
	is := is.New(t)
	g, err := board.FromBottomRows(10, 20, []string{
		"..#....#..",
		"#.###.###.",
	})
	is.NoErr(err)
	p := NewStaticTurnPlayerWithWeights(10, 20, equity.DefaultWeights())
	for _, pc := range piece.All() {
		// the next search reuses the play slice
		first := p.GenerateMoves(g, pc, spawn, 100)[0]
		best := GenBestStaticTurn(g, p, pc, spawn)
		is.True(best.Equals(first))
		is.Equal(best.Cost(), first.Cost())
	}
}

func TestWeightsChangeThePlay(t *testing.T) {
	is := is.New(t)
	p := NewStaticTurnPlayerWithWeights(10, 20, equity.DefaultWeights())
	g := board.MakeDefaultGrid()
	flat, _, err := p.BestPlay(g, piece.Get(piece.I), spawn, 0)
	is.NoErr(err)
	// every placement on an empty grid costs the same, so the first one wins
	is.Equal(flat.Rotation(), 0)
	is.Equal(flat.Column(), 0)
	is.Equal(flat.Cost(), 2.0)

	one := 1.0
	p.Calculator().Update(equity.WeightsUpdate{RightmostLane: &one})
	is.Equal(p.Calculator().Weights().RightmostLane, 1.0)
	again, _, err := p.BestPlay(g, piece.Get(piece.I), spawn, 0)
	is.NoErr(err)
	is.Equal(again.Cost(), 2.0)

	p.Calculator().Update(equity.WeightsUpdate{RightmostLane: ptr(-1)})
	right, _, err := p.BestPlay(g, piece.Get(piece.I), spawn, 0)
	is.NoErr(err)
	// a vertical I against the right wall now pays for itself
	is.Equal(right.Rotation(), 1)
	is.Equal(right.Column(), 7)
	is.Equal(right.Cost(), -2.0)
}

func ptr(f float64) *float64 { return &f }

func TestNewStaticTurnPlayerFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchThreads, 2)
	p, err := NewStaticTurnPlayer(cfg)
	is.NoErr(err)
	is.Equal(p.Calculator().Weights(), equity.DefaultWeights())
	plays := p.GenerateMoves(board.MakeDefaultGrid(), piece.Get(piece.O), spawn, 3)
	is.Equal(len(plays), 3)
}
