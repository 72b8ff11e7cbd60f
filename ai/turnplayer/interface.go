package turnplayer

import (
	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/movegen"
	"github.com/domino14/stacker/piece"
)

type AITurnPlayer interface {
	// GenerateMoves returns the numPlays cheapest placements, cheapest first.
	GenerateMoves(g *board.Grid, p *piece.Piece, spawn board.Point, numPlays int) []*move.Placement
	MoveGenerator() movegen.MoveGenerator
}
