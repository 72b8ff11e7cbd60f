// Package gamestore keeps self-play results in a sqlite database so that
// weight presets can be compared across runs.
package gamestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	uid           TEXT PRIMARY KEY,
	seed          INTEGER NOT NULL,
	score         INTEGER NOT NULL,
	lines         INTEGER NOT NULL,
	level         INTEGER NOT NULL,
	pieces_placed INTEGER NOT NULL,
	tetrises      INTEGER NOT NULL,
	game_over     INTEGER NOT NULL,
	weights       TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS games_weights ON games(weights);
`

// Record is one stored game.
type Record struct {
	game.Summary
	Weights   equity.Weights
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; the workers share this handle.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-gamestore")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func encodeWeights(w equity.Weights) (string, error) {
	bts, err := yaml.Marshal(w)
	if err != nil {
		return "", err
	}
	return string(bts), nil
}

// SaveGame stores the summary of one game played with weights w. Saving
// the same game twice replaces the first copy.
func (s *Store) SaveGame(ctx context.Context, sum game.Summary, w equity.Weights) error {
	ws, err := encodeWeights(w)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games(uid, seed, score, lines, level, pieces_placed,
			tetrises, game_over, weights, created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)`,
		sum.Uid, int64(sum.Seed), sum.Score, sum.Lines, sum.Level, sum.PiecesPlaced,
		sum.Tetrises, sum.GameOver, ws, time.Now().UnixMilli())
	return err
}

// Games returns the most recently stored games, newest first.
func (s *Store) Games(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uid, seed, score, lines, level, pieces_placed, tetrises, game_over,
			weights, created_at
		FROM games
		ORDER BY created_at DESC, uid ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		var seed, created int64
		var ws string
		if err := rows.Scan(&r.Uid, &seed, &r.Score, &r.Lines, &r.Level, &r.PiecesPlaced,
			&r.Tetrises, &r.GameOver, &ws, &created); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.CreatedAt = time.UnixMilli(created)
		if err := yaml.Unmarshal([]byte(ws), &r.Weights); err != nil {
			return nil, fmt.Errorf("game %v weights: %w", r.Uid, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// WeightsResult is the aggregate over every game played with one weight
// vector.
type WeightsResult struct {
	Weights  equity.Weights
	Games    int
	AvgLines float64
	AvgScore float64
	MaxLines int
}

// ResultsByWeights groups the stored games by weight vector, best average
// line count first.
func (s *Store) ResultsByWeights(ctx context.Context) ([]WeightsResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT weights, COUNT(1), AVG(lines), AVG(score), MAX(lines)
		FROM games
		GROUP BY weights
		ORDER BY AVG(lines) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WeightsResult
	for rows.Next() {
		var r WeightsResult
		var ws string
		if err := rows.Scan(&ws, &r.Games, &r.AvgLines, &r.AvgScore, &r.MaxLines); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal([]byte(ws), &r.Weights); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
