package automatic

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/gamestore"
)

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(20)
	for _, s := range seeds {
		is.True(s != 0)
	}
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)
	is.Equal(SequentialSeeds(7, 3), []uint64{7, 8, 9})
}

func TestStartCompVCompGames(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	logfile := filepath.Join(dir, "autoplay.txt")
	storePath := filepath.Join(dir, "games.db")
	cfg := testConfig(30)

	res, err := StartCompVCompGames(context.Background(), cfg, RunOptions{
		Threads:        2,
		OutputFilename: logfile,
		Seeds:          SequentialSeeds(10, 4),
		StorePath:      storePath,
	})
	is.NoErr(err)
	is.Equal(len(res.Games), 4)
	for i, g := range res.Games {
		is.Equal(g.Seed, uint64(10+i))
	}
	is.Equal(res.Lines().Iterations(), 4)
	is.Equal(res.Weights, equity.DefaultWeights())
	is.Equal(IsPlaying.Value(), int64(0))
	is.Equal(CVCCounter.Value(), int64(4))
	is.True(res.String() != "")

	la, err := AnalyzeLog(mustOpen(t, logfile))
	is.NoErr(err)
	is.Equal(len(la.Games), 4)
	pieces := 0
	for _, g := range res.Games {
		pieces += g.PiecesPlaced
	}
	is.Equal(la.PieceCosts.Iterations(), pieces)

	store, err := gamestore.Open(context.Background(), storePath)
	is.NoErr(err)
	defer store.Close()
	recs, err := store.Games(context.Background(), 10)
	is.NoErr(err)
	is.Equal(len(recs), 4)
}

func TestStartCompVCompGamesCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := StartCompVCompGames(ctx, testConfig(30), RunOptions{
		Threads:        2,
		OutputFilename: filepath.Join(t.TempDir(), "autoplay.txt"),
		Seeds:          SequentialSeeds(1, 50),
	})
	is.Equal(err, context.Canceled)
	is.True(len(res.Games) < 50)
}

func TestWeightsOverride(t *testing.T) {
	is := is.New(t)
	w := equity.DefaultWeights()
	w.Bumpiness = 0.3
	res, err := StartCompVCompGames(context.Background(), testConfig(10), RunOptions{
		Threads:        1,
		OutputFilename: filepath.Join(t.TempDir(), "autoplay.txt"),
		Seeds:          []uint64{3},
		Weights:        &w,
	})
	is.NoErr(err)
	is.Equal(res.Weights, w)
}
