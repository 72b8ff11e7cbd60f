package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/gamestore"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// RunOptions says what to play. Zero values fall back to the config.
type RunOptions struct {
	NumGames       int
	Threads        int
	OutputFilename string
	// Seeds, if given, are used in order, one per game; NumGames is then
	// ignored.
	Seeds []uint64
	// StorePath names a sqlite file to save every game to.
	StorePath string
	// Weights overrides the weights named by the config.
	Weights *equity.Weights
}

func (o *RunOptions) setDefaults(cfg *config.Config) {
	if o.NumGames <= 0 {
		o.NumGames = cfg.GetInt(config.ConfigAutoplayGames)
	}
	if o.Threads <= 0 {
		o.Threads = cfg.GetInt(config.ConfigAutoplayThreads)
	}
	if o.OutputFilename == "" {
		o.OutputFilename = cfg.GetString(config.ConfigAutoplayLogfile)
	}
	if o.StorePath == "" {
		o.StorePath = cfg.GetString(config.ConfigGamestorePath)
	}
	if len(o.Seeds) == 0 {
		if base := cfg.GetUint64(config.ConfigSeed); base != 0 {
			o.Seeds = SequentialSeeds(base, o.NumGames)
		} else {
			o.Seeds = GenerateSeeds(o.NumGames)
		}
	}
	o.NumGames = len(o.Seeds)
	o.Threads = max(1, min(o.Threads, o.NumGames))
}

// StartCompVCompGames plays the bot against itself and blocks until every
// game is done or ctx is cancelled. Every placed piece is written to the
// log file. Games already finished when ctx is cancelled are still
// counted in the result.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, opts RunOptions) (*Results, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	opts.setDefaults(cfg)

	var weights equity.Weights
	if opts.Weights != nil {
		weights = *opts.Weights
	} else {
		w, err := equity.WeightsFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		weights = w
	}
	var err error

	var store *gamestore.Store
	if opts.StorePath != "" {
		store, err = gamestore.Open(ctx, opts.StorePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	logfile, err := os.Create(opts.OutputFilename)
	if err != nil {
		return nil, err
	}
	log.Info().Int("games", opts.NumGames).Int("threads", opts.Threads).
		Str("logfile", opts.OutputFilename).Msg("starting-autoplay")

	CVCCounter.Set(0)
	jobs := make(chan uint64, 100)
	logChan := make(chan string, 100)
	results := &Results{Weights: weights}
	var resultsMu sync.Mutex

	// the turn logger
	loggerDone := make(chan error, 1)
	go func() {
		_, werr := logfile.WriteString(LogHeader)
		for msg := range logChan {
			if werr == nil {
				_, werr = logfile.WriteString(msg)
			}
		}
		cerr := logfile.Close()
		log.Debug().Msg("exiting turn logger goroutine")
		loggerDone <- errors.Join(werr, cerr)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, seed := range opts.Seeds {
			select {
			case jobs <- seed:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("got stop signal, exiting soon")
				return nil
			}
		}
		return nil
	})

	for i := 0; i < opts.Threads; i++ {
		g.Go(func() error {
			r, err := NewGameRunner(logChan, cfg)
			if err != nil {
				return err
			}
			if opts.Weights != nil {
				r.Bot().Calculator().SetWeights(weights)
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for seed := range jobs {
				if gctx.Err() != nil {
					continue
				}
				sum, err := r.PlayFull(seed)
				if err != nil {
					return fmt.Errorf("game with seed %d: %w", seed, err)
				}
				if store != nil {
					if err := store.SaveGame(gctx, sum, weights); err != nil {
						return err
					}
				}
				resultsMu.Lock()
				results.add(sum)
				resultsMu.Unlock()
				CVCCounter.Add(1)
				if n := CVCCounter.Value(); n%100 == 0 {
					log.Info().Int64("played", n).Msg("autoplay-progress")
				}
			}
			return nil
		})
	}

	werr := g.Wait()
	close(logChan)
	lerr := <-loggerDone
	if werr != nil {
		return results, werr
	}
	if lerr != nil {
		return results, lerr
	}
	results.sort()
	log.Info().Int("games", len(results.Games)).Msg("all-games-finished")
	return results, ctx.Err()
}
