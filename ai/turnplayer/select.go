package turnplayer

import (
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/stacker/move"
)

// ErrNoMoves means the piece has no legal resting place. For a live game
// this is game over.
var ErrNoMoves = errors.New("no legal placement")

// SelectBest returns the cheapest placement, or nil if there are none. Of
// several equally cheap placements the one enumerated first wins, that is
// the lowest rotation and then the lowest column.
func SelectBest(plays []*move.Placement) *move.Placement {
	if len(plays) == 0 {
		return nil
	}
	return lo.MinBy(plays, func(a, b *move.Placement) bool {
		if a.Cost() != b.Cost() {
			return a.Cost() < b.Cost()
		}
		return a.Index() < b.Index()
	})
}

// TopPlays sorts plays cheapest first, in place, and returns at most ct of
// them. Ties keep enumeration order.
func TopPlays(plays []*move.Placement, ct int) []*move.Placement {
	sort.SliceStable(plays, func(i, j int) bool {
		if plays[i].Cost() != plays[j].Cost() {
			return plays[i].Cost() < plays[j].Cost()
		}
		return plays[i].Index() < plays[j].Index()
	})
	if ct > len(plays) {
		ct = len(plays)
	}
	return plays[:ct]
}
