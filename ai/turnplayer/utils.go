package turnplayer

import (
	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/movegen"
	"github.com/domino14/stacker/piece"
)

// GenBestStaticTurn is a useful utility function for autoplaying. It only
// keeps the top placement while searching and leaves the generator
// recording all plays afterwards.
func GenBestStaticTurn(g *board.Grid, p AITurnPlayer, pc *piece.Piece, spawn board.Point) *move.Placement {
	mg := p.MoveGenerator()
	mg.SetPlayRecorder(movegen.TopPlayOnlyRecorder)
	defer mg.SetPlayRecorder(movegen.AllPlaysRecorder)
	return SelectBest(mg.GenAll(g, pc, spawn))
}
