package dataloaders

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrWeightsFileNotFound = errors.New("weights file not found")

// WeightsDir is where named weight presets live.
func WeightsDir(dataPath string) string {
	return filepath.Join(dataPath, "weights")
}

func candidates(dataPath, name string) []string {
	c := []string{name}
	if filepath.IsAbs(name) {
		return c
	}
	dir := WeightsDir(dataPath)
	c = append(c, filepath.Join(dir, name))
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		c = append(c, filepath.Join(dir, name+".yaml"))
	}
	return c
}

// OpenWeightsFile opens name as a path first, then as a preset under the
// weights directory, with or without the .yaml extension.
func OpenWeightsFile(dataPath, name string) (io.ReadCloser, error) {
	for _, p := range candidates(dataPath, name) {
		f, err := os.Open(p)
		if err == nil {
			log.Debug().Str("weights-file", name).Str("path", p).Msg("opened-weights-file")
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, errors.Join(ErrWeightsFileNotFound, errors.New(name))
}
