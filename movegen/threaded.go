package movegen

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/piece"
)

// genThreaded shares the candidate slots out over gen.threads goroutines.
// Each goroutine reads g and writes only into its own scratch grids, so
// the only shared state is the play list. The result is put back into
// enumeration order afterwards so callers cannot tell threaded and serial
// searches apart.
func (gen *Generator) genThreaded(g *board.Grid, p *piece.Piece, spawnRow int, cs []candidate) {
	work := make([][]candidate, gen.threads)
	for i, c := range cs {
		t := i % gen.threads
		work[t] = append(work[t], c)
	}

	var eg errgroup.Group
	for t := range work {
		eg.Go(func() error {
			for _, c := range work[t] {
				pl := gen.evaluate(g, p, spawnRow, c)
				if pl == nil {
					continue
				}
				gen.recordMu.Lock()
				gen.recorder(gen, pl)
				gen.recordMu.Unlock()
			}
			return nil
		})
	}
	// evaluate never fails
	_ = eg.Wait()

	sortPlays(gen.plays)
}

func sortPlays(plays []*move.Placement) {
	sort.Slice(plays, func(i, j int) bool {
		return plays[i].Index() < plays[j].Index()
	})
}
