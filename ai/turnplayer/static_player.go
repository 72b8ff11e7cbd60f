package turnplayer

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/movegen"
	"github.com/domino14/stacker/piece"
)

// StaticTurnPlayer plays the cheapest placement of the current piece,
// looking no further ahead.
type StaticTurnPlayer struct {
	gen  *movegen.Generator
	calc *equity.WeightedCalculator
}

// NewStaticTurnPlayer builds a player for the default grid size, with the
// weights and search threads named by cfg.
func NewStaticTurnPlayer(cfg *config.Config) (*StaticTurnPlayer, error) {
	w, err := equity.WeightsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	p := NewStaticTurnPlayerWithWeights(board.DefaultWidth, board.DefaultHeight, w)
	p.gen.SetThreads(cfg.GetInt(config.ConfigSearchThreads))
	return p, nil
}

func NewStaticTurnPlayerWithWeights(width, height int, w equity.Weights) *StaticTurnPlayer {
	calc := equity.NewWeightedCalculator(w)
	return &StaticTurnPlayer{
		gen:  movegen.NewGenerator(width, height, calc),
		calc: calc,
	}
}

func (p *StaticTurnPlayer) MoveGenerator() movegen.MoveGenerator {
	return p.gen
}

// Calculator is the weighted scorer the player searches with. Changing its
// weights changes how the player plays from the next search on.
func (p *StaticTurnPlayer) Calculator() *equity.WeightedCalculator {
	return p.calc
}

// SetEquityCalculator replaces the scorer, for instance with an
// equity.Combined. Calculator keeps returning the weighted scorer.
func (p *StaticTurnPlayer) SetEquityCalculator(c equity.Calculator) {
	p.gen.SetEquityCalculator(c)
}

func (p *StaticTurnPlayer) GenerateMoves(g *board.Grid, pc *piece.Piece, spawn board.Point, numPlays int) []*move.Placement {
	p.gen.SetPlayRecorder(movegen.AllPlaysRecorder)
	plays := p.gen.GenAll(g, pc, spawn)
	return TopPlays(plays, numPlays)
}

// BestPlay finds the cheapest placement for pc and the inputs that get
// there from spawn at currentRotation. It returns ErrNoMoves if the piece
// cannot be placed anywhere.
func (p *StaticTurnPlayer) BestPlay(g *board.Grid, pc *piece.Piece, spawn board.Point,
	currentRotation int) (*move.Placement, []move.Action, error) {

	best := GenBestStaticTurn(g, p, pc, spawn)
	if best == nil {
		return nil, nil, ErrNoMoves
	}
	steps := move.PlanSteps(best, currentRotation, spawn.X, pc.NumRotations())
	log.Debug().Str("best", best.String()).Str("steps", move.ActionsString(steps)).
		Msg("best-play")
	return best, steps, nil
}
