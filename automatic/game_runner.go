// Package automatic plays the bot against itself, many games at a time,
// and collects what happened.
package automatic

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/ai/bot"
	aiturnplayer "github.com/domino14/stacker/ai/turnplayer"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/game"
)

// LogHeader is the first line of the per-piece log file.
const LogHeader = "gameID,piece,hold,rotation,column,row,lines,totallines,score,level,cost\n"

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game      *game.Game
	bot       *bot.BotTurnPlayer
	config    *config.Config
	logchan   chan string
	maxPieces int
}

// NewGameRunner sets up a runner with the bot described by cfg. logchan
// may be nil.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	b, err := bot.NewBotTurnPlayer(bot.NewBotConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &GameRunner{
		bot:       b,
		config:    cfg,
		logchan:   logchan,
		maxPieces: cfg.GetInt(config.ConfigAutoplayMaxPiece),
	}, nil
}

func (r *GameRunner) Bot() *bot.BotTurnPlayer {
	return r.bot
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) StartGame(seed uint64) {
	spawnColumn := r.config.GetInt(config.ConfigSpawnColumn)
	r.game = game.NewGame(game.Options{
		Seed:        seed,
		SpawnColumn: &spawnColumn,
	})
	r.game.Start()
}

// PlayBestTurn lets the bot place one piece. It returns false once the
// game cannot go on.
func (r *GameRunner) PlayBestTurn() (bool, error) {
	d, _, err := r.bot.PlayTurn(r.game)
	if errors.Is(err, aiturnplayer.ErrNoMoves) || errors.Is(err, game.ErrGameOver) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if r.logchan != nil {
		hist := r.game.History()
		t := hist[len(hist)-1]
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v,%.3f\n",
			r.game.Uid(),
			t.Piece,
			d.Hold,
			t.Rotation,
			t.Column,
			t.Row,
			t.LinesCleared,
			r.game.Lines(),
			r.game.Score(),
			t.Level,
			d.Placement.Cost())
	}
	return !r.game.Over(), nil
}

// PlayFull plays one game to the end or to the piece limit.
func (r *GameRunner) PlayFull(seed uint64) (game.Summary, error) {
	r.StartGame(seed)
	for r.maxPieces <= 0 || r.game.PiecesPlaced() < r.maxPieces {
		more, err := r.PlayBestTurn()
		if err != nil {
			return game.Summary{}, err
		}
		if !more {
			break
		}
	}
	sum := r.game.Summary()
	log.Debug().Str("uid", sum.Uid).Int("lines", sum.Lines).Int("score", sum.Score).
		Int("pieces", sum.PiecesPlaced).Msg("game-finished")
	return sum, nil
}
