package game

import (
	"fmt"

	"github.com/domino14/stacker/piece"
)

// Turn is one locked piece.
type Turn struct {
	Piece        piece.Kind `yaml:"piece" json:"piece"`
	Rotation     int        `yaml:"rotation" json:"rotation"`
	Column       int        `yaml:"column" json:"column"`
	Row          int        `yaml:"row" json:"row"`
	LinesCleared int        `yaml:"lines_cleared" json:"lines_cleared"`
	Points       int        `yaml:"points" json:"points"`
	Level        int        `yaml:"level" json:"level"`
}

func (t Turn) String() string {
	return fmt.Sprintf("%v r%d c%d row %d: %d lines, %d pts (level %d)",
		t.Piece, t.Rotation, t.Column, t.Row, t.LinesCleared, t.Points, t.Level)
}

// Summary is the outcome of a finished or abandoned game.
type Summary struct {
	Uid          string `yaml:"uid" json:"uid"`
	Seed         uint64 `yaml:"seed" json:"seed"`
	Score        int    `yaml:"score" json:"score"`
	Lines        int    `yaml:"lines" json:"lines"`
	Level        int    `yaml:"level" json:"level"`
	PiecesPlaced int    `yaml:"pieces_placed" json:"pieces_placed"`
	Tetrises     int    `yaml:"tetrises" json:"tetrises"`
	GameOver     bool   `yaml:"game_over" json:"game_over"`
}

func (g *Game) Summary() Summary {
	tetrises := 0
	for _, t := range g.history {
		if t.LinesCleared == 4 {
			tetrises++
		}
	}
	return Summary{
		Uid:          g.uid,
		Seed:         g.seed,
		Score:        g.score,
		Lines:        g.lines,
		Level:        g.Level(),
		PiecesPlaced: g.piecesPlaced,
		Tetrises:     tetrises,
		GameOver:     g.Over(),
	}
}
