// autoplay runs the bot against itself without the shell:
//
//	autoplay --autoplay-games=500 --autoplay-threads=8 --weights-path=mine.yaml
//	autoplay analyze /tmp/autoplay.txt
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/automatic"
	"github.com/domino14/stacker/config"
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if args := cfg.Args(); len(args) > 0 {
		if args[0] != "analyze" {
			log.Fatal().Strs("args", args).Msg("unknown command; the only command is analyze")
		}
		path := cfg.GetString(config.ConfigAutoplayLogfile)
		if len(args) > 1 {
			path = args[1]
		}
		out, err := automatic.AnalyzeLogFile(path)
		if err != nil {
			log.Fatal().Err(err).Msg("analyze-failed")
		}
		fmt.Print(out)
		return
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, err := automatic.StartCompVCompGames(ctx, cfg, automatic.RunOptions{})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("autoplay-failed")
		return
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("autoplay-done")
	fmt.Print(res)
}
