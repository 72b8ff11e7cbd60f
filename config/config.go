package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigConfigFile       = "config-file"
	ConfigDataPath         = "data-path"
	ConfigWeightsPath      = "weights-path"
	ConfigSearchThreads    = "search-threads"
	ConfigSpawnColumn      = "spawn-column"
	ConfigUseHold          = "use-hold"
	ConfigSeed             = "seed"
	ConfigAutoplayGames    = "autoplay-games"
	ConfigAutoplayThreads  = "autoplay-threads"
	ConfigAutoplayMaxPiece = "autoplay-max-pieces"
	ConfigAutoplayLogfile  = "autoplay-logfile"
	ConfigGamestorePath    = "gamestore-path"
	ConfigCPUProfile       = "cpu-profile"
	ConfigMemProfile       = "mem-profile"
)

// Config is the program-wide configuration. Values come, in increasing
// order of precedence, from defaults, an optional config file, STACKER_*
// environment variables and command-line flags.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigWeightsPath, "")
	v.SetDefault(ConfigSearchThreads, 1)
	v.SetDefault(ConfigSpawnColumn, 4)
	v.SetDefault(ConfigUseHold, false)
	v.SetDefault(ConfigSeed, 0)
	v.SetDefault(ConfigAutoplayGames, 100)
	v.SetDefault(ConfigAutoplayThreads, 4)
	v.SetDefault(ConfigAutoplayMaxPiece, 2000)
	v.SetDefault(ConfigAutoplayLogfile, "/tmp/autoplay.txt")
	v.SetDefault(ConfigGamestorePath, "")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

// DefaultConfig returns a configuration holding only the defaults. It is
// mostly useful for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	setDefaults(c.Viper)
	return c
}

// Load reads the environment, the command-line args and, if one is named,
// a config file.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	c.SetEnvPrefix("STACKER")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("stacker", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional yaml config file")
	fs.String(ConfigDataPath, "./data", "directory holding weight files")
	fs.String(ConfigWeightsPath, "", "weights file to load instead of the built-in defaults")
	fs.Int(ConfigSearchThreads, 1, "goroutines used by the placement search")
	fs.Int(ConfigSpawnColumn, 4, "column new pieces spawn at")
	fs.Bool(ConfigUseHold, false, "let the bot use the hold slot")
	fs.Uint64(ConfigSeed, 0, "piece bag seed; 0 picks one at random")
	fs.Int(ConfigAutoplayGames, 100, "number of self-play games")
	fs.Int(ConfigAutoplayThreads, 4, "self-play worker goroutines")
	fs.Int(ConfigAutoplayMaxPiece, 2000, "self-play games stop after this many pieces")
	fs.String(ConfigAutoplayLogfile, "/tmp/autoplay.txt", "self-play log output")
	fs.String(ConfigGamestorePath, "", "sqlite file to store self-play results in")
	fs.String(ConfigCPUProfile, "", "write a cpu profile here")
	fs.String(ConfigMemProfile, "", "write a memory profile here")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	if f := c.GetString(ConfigConfigFile); f != "" {
		c.SetConfigFile(f)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %v: %w", f, err)
		}
	}
	return nil
}

// Args returns the positional arguments left over after Load parsed the
// flags.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes the data path relative to basePath if it is not
// absolute, so that the binary can be run from any directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basePath, p))
	}
}

// SanitizedSettings returns every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
