package equity

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/stacker/cache"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/dataloaders"
)

// ReadWeights parses a yaml weight file. Weights missing from the file keep
// their default values.
func ReadWeights(r io.Reader) (Weights, error) {
	var u WeightsUpdate
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&u); err != nil && !errors.Is(err, io.EOF) {
		return Weights{}, err
	}
	return DefaultWeights().With(u), nil
}

// WriteWeights writes w in the format ReadWeights understands.
func WriteWeights(w io.Writer, weights Weights) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(weights)
}

// SaveWeights writes weights to path.
func SaveWeights(path string, weights Weights) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteWeights(f, weights)
}

func loadWeights(dataPath, name string) (Weights, error) {
	f, err := dataloaders.OpenWeightsFile(dataPath, name)
	if err != nil {
		return Weights{}, err
	}
	defer f.Close()
	w, err := ReadWeights(f)
	if err != nil {
		return Weights{}, fmt.Errorf("weights file %v: %w", name, err)
	}
	log.Debug().Str("name", name).Str("weights", w.String()).Msg("loaded-weights")
	return w, nil
}

// WeightsCacheLoadFunc loads a weight file for the object cache. The key
// looks like weightsfile:<name>.
func WeightsCacheLoadFunc(cfg *config.Config, key string) (any, error) {
	name, ok := strings.CutPrefix(key, "weightsfile:")
	if !ok {
		return nil, errors.New("weightscacheloadfunc - bad cache key: " + key)
	}
	if name == "" {
		return nil, errors.New("cache key missing file name")
	}
	return loadWeights(cfg.GetString(config.ConfigDataPath), name)
}

// LoadWeights returns the named weight preset, going through the object
// cache.
func LoadWeights(cfg *config.Config, name string) (Weights, error) {
	obj, err := cache.Load(cfg, "weightsfile:"+name, WeightsCacheLoadFunc)
	if err != nil {
		return Weights{}, err
	}
	return obj.(Weights), nil
}

// WeightsFromConfig returns the weights named by the weights-path setting,
// or the defaults if none is set.
func WeightsFromConfig(cfg *config.Config) (Weights, error) {
	name := cfg.GetString(config.ConfigWeightsPath)
	if name == "" {
		return DefaultWeights(), nil
	}
	return LoadWeights(cfg, name)
}
