package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigSpawnColumn), 4)
	is.Equal(cfg.GetInt(ConfigSearchThreads), 1)
	is.Equal(cfg.GetBool(ConfigDebug), false)
}

func TestLoadArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--debug", "--search-threads=3", "--weights-path", "/tmp/w.yaml"})
	is.NoErr(err)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetInt(ConfigSearchThreads), 3)
	is.Equal(cfg.GetString(ConfigWeightsPath), "/tmp/w.yaml")
	// untouched keys keep their defaults
	is.Equal(cfg.GetInt(ConfigAutoplayGames), 100)
}

func TestLoadKeepsPositionalArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--debug", "--", "autoplay", "10", "-file", "x.txt"}))
	is.Equal(cfg.Args(), []string{"autoplay", "10", "-file", "x.txt"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("STACKER_AUTOPLAY_GAMES", "12")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigAutoplayGames), 12)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	f := filepath.Join(dir, "stacker.yaml")
	is.NoErr(os.WriteFile(f, []byte("spawn-column: 3\nuse-hold: true\n"), 0o644))
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file=" + f}))
	is.Equal(cfg.GetInt(ConfigSpawnColumn), 3)
	is.True(cfg.GetBool(ConfigUseHold))
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.AdjustRelativePaths("/opt/stacker")
	is.Equal(cfg.GetString(ConfigDataPath), "/opt/stacker/data")
	cfg.Set(ConfigDataPath, "/abs/data")
	cfg.AdjustRelativePaths("/opt/stacker")
	is.Equal(cfg.GetString(ConfigDataPath), "/abs/data")
}
