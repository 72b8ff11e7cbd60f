// Package bot is the full computer player: it searches the active piece
// and, when allowed, the piece a hold would bring in, and plays whichever
// is cheaper.
package bot

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	aiturnplayer "github.com/domino14/stacker/ai/turnplayer"
	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/game"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/piece"
)

// maxMemo bounds the evaluation memo; it is simply emptied when full.
const maxMemo = 1 << 14

type BotConfig struct {
	*config.Config
	// UseHold lets the bot swap the active piece out before placing.
	UseHold bool
}

func NewBotConfig(cfg *config.Config) *BotConfig {
	return &BotConfig{Config: cfg, UseHold: cfg.GetBool(config.ConfigUseHold)}
}

// Decision is what the bot wants to do with the active piece.
type Decision struct {
	Hold      bool
	Placement *move.Placement
	// Steps reach Placement from where the active piece is now, or from
	// the spawn point after the hold if there is one.
	Steps []move.Action
}

type BotTurnPlayer struct {
	aiturnplayer.StaticTurnPlayer
	cfg *BotConfig

	memo     map[uint64]*move.Placement
	memoHits int
}

func NewBotTurnPlayer(cfg *BotConfig) (*BotTurnPlayer, error) {
	sp, err := aiturnplayer.NewStaticTurnPlayer(cfg.Config)
	if err != nil {
		return nil, err
	}
	return &BotTurnPlayer{
		StaticTurnPlayer: *sp,
		cfg:              cfg,
		memo:             make(map[uint64]*move.Placement),
	}, nil
}

func (b *BotTurnPlayer) SetUseHold(h bool) {
	b.cfg.UseHold = h
}

func (b *BotTurnPlayer) UseHold() bool {
	return b.cfg.UseHold
}

// SetEquityCalculator swaps the scorer and forgets every memoized search.
func (b *BotTurnPlayer) SetEquityCalculator(c equity.Calculator) {
	b.StaticTurnPlayer.SetEquityCalculator(c)
	b.ClearMemo()
}

func (b *BotTurnPlayer) ClearMemo() {
	clear(b.memo)
}

func (b *BotTurnPlayer) MemoHits() int {
	return b.memoHits
}

// memoKey identifies one search: the grid contents, the piece, the spawn
// point and the weights in force.
func (b *BotTurnPlayer) memoKey(g *board.Grid, pc *piece.Piece, spawn board.Point) uint64 {
	w := b.Calculator().Weights()
	buf := make([]byte, 0, 8*10)
	buf = binary.LittleEndian.AppendUint64(buf, g.Fingerprint())
	buf = binary.LittleEndian.AppendUint64(buf, uint64(pc.Kind()))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(spawn.X)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(spawn.Y)))
	for _, f := range []float64{w.Holes, w.BlocksAboveHoles, w.Pillars, w.MaxHeight,
		w.Bumpiness, w.RightmostLane} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	return xxhash.Sum64(buf)
}

// best returns the cheapest placement of pc, or nil. Custom pieces are
// searched every time since their kind does not identify their shape.
func (b *BotTurnPlayer) best(g *board.Grid, pc *piece.Piece, spawn board.Point) *move.Placement {
	if pc.Kind() == piece.Custom {
		return aiturnplayer.GenBestStaticTurn(g, b, pc, spawn)
	}
	key := b.memoKey(g, pc, spawn)
	if pl, ok := b.memo[key]; ok {
		b.memoHits++
		return pl
	}
	pl := aiturnplayer.GenBestStaticTurn(g, b, pc, spawn)
	if len(b.memo) >= maxMemo {
		clear(b.memo)
	}
	b.memo[key] = pl
	return pl
}

// Decide picks a move for the active piece of gm without playing it. With
// hold enabled the held (or incoming) piece replaces the active one only
// if its best placement is strictly cheaper.
func (b *BotTurnPlayer) Decide(gm *game.Game) (*Decision, error) {
	if gm.Over() {
		return nil, game.ErrGameOver
	}
	grid, spawn := gm.Grid(), gm.Spawn()
	cur := gm.Current()
	d := &Decision{Placement: b.best(grid, cur, spawn)}

	if b.cfg.UseHold {
		// The swapped-in piece respawns at rotation 0; if that spot is taken,
		// holding would top out.
		if alt := gm.HoldCandidate(); alt != nil && !grid.Collides(alt.Shape(0), spawn) {
			altBest := b.best(grid, alt, spawn)
			if altBest != nil && (d.Placement == nil || altBest.Cost() < d.Placement.Cost()) {
				d = &Decision{Hold: true, Placement: altBest}
			}
		}
	}
	if d.Placement == nil {
		return nil, aiturnplayer.ErrNoMoves
	}
	rot, col := gm.Rotation(), gm.Position().X
	if d.Hold {
		rot, col = 0, spawn.X
	}
	d.Steps = move.PlanSteps(d.Placement, rot, col, d.Placement.Piece().NumRotations())
	return d, nil
}

// PlayTurn decides and plays one piece. It returns the decision and the
// number of lines cleared. A piece with nowhere to go ends the game and is
// reported as ErrNoMoves.
func (b *BotTurnPlayer) PlayTurn(gm *game.Game) (*Decision, int, error) {
	d, err := b.Decide(gm)
	if err != nil {
		return nil, 0, err
	}
	if d.Hold {
		if err := gm.Hold(); err != nil {
			return nil, 0, err
		}
	}
	lines, err := gm.ApplyActions(d.Steps)
	if err != nil {
		return nil, 0, err
	}
	log.Debug().Str("placement", d.Placement.ShortDescription()).Bool("hold", d.Hold).
		Int("lines", lines).Msg("bot-played")
	return d, lines, nil
}
