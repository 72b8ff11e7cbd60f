package gamestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/game"
)

func TestSaveAndList(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	is.NoErr(err)
	defer s.Close()

	flat := equity.Weights{Holes: 1, MaxHeight: 1}
	is.NoErr(s.SaveGame(ctx, game.Summary{Uid: "a", Seed: 1 << 62, Lines: 10, Score: 1200,
		Level: 2, PiecesPlaced: 40, GameOver: true}, equity.DefaultWeights()))
	is.NoErr(s.SaveGame(ctx, game.Summary{Uid: "b", Seed: 2, Lines: 30, Score: 5000,
		Level: 4, PiecesPlaced: 90, Tetrises: 2}, equity.DefaultWeights()))
	is.NoErr(s.SaveGame(ctx, game.Summary{Uid: "c", Seed: 3, Lines: 5}, flat))
	// same uid replaces
	is.NoErr(s.SaveGame(ctx, game.Summary{Uid: "c", Seed: 3, Lines: 6}, flat))

	games, err := s.Games(ctx, 10)
	is.NoErr(err)
	is.Equal(len(games), 3)
	byUid := map[string]Record{}
	for _, g := range games {
		byUid[g.Uid] = g
	}
	is.Equal(byUid["a"].Seed, uint64(1<<62))
	is.True(byUid["a"].GameOver)
	is.Equal(byUid["b"].Tetrises, 2)
	is.Equal(byUid["c"].Lines, 6)
	is.Equal(byUid["c"].Weights, flat)

	res, err := s.ResultsByWeights(ctx)
	is.NoErr(err)
	is.Equal(len(res), 2)
	is.Equal(res[0].Weights, equity.DefaultWeights())
	is.Equal(res[0].Games, 2)
	is.Equal(res[0].AvgLines, 20.0)
	is.Equal(res[0].MaxLines, 30)
	is.Equal(res[1].Weights, flat)
}

func TestOpenFile(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "games.db")
	s, err := Open(ctx, path)
	is.NoErr(err)
	is.NoErr(s.SaveGame(ctx, game.Summary{Uid: "x", Seed: 9}, equity.DefaultWeights()))
	is.NoErr(s.Close())

	s, err = Open(ctx, path)
	is.NoErr(err)
	defer s.Close()
	games, err := s.Games(ctx, 1)
	is.NoErr(err)
	is.Equal(len(games), 1)
	is.Equal(games[0].Uid, "x")
}
