package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/stacker/config"
)

func TestLoadCallsLoaderOnce(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		return key + "-value", nil
	}
	for i := 0; i < 3; i++ {
		obj, err := Load(cfg, "test:once", loader)
		is.NoErr(err)
		is.Equal(obj.(string), "test:once-value")
	}
	is.Equal(calls, 1)

	is.True(Evict("test:once"))
	is.True(!Evict("test:once"))
	_, err := Load(cfg, "test:once", loader)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestFailedLoadIsNotCached(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	boom := errors.New("boom")
	_, err := Load(cfg, "test:fail", func(*config.Config, string) (any, error) {
		return nil, boom
	})
	is.True(errors.Is(err, boom))
	obj, err := Load(cfg, "test:fail", func(*config.Config, string) (any, error) {
		return 3, nil
	})
	is.NoErr(err)
	is.Equal(obj.(int), 3)
}
