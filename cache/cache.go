// Package cache holds objects that are expensive to load and that never
// change once loaded, such as weight preset files. The shell and every
// self-play worker share one copy per key.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/config"
)

type store struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object for key. It is only called on a cache miss.
type LoadFunc func(cfg *config.Config, key string) (any, error)

var globalStore = &store{objects: make(map[string]any)}

func (s *store) get(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	s.Lock()
	defer s.Unlock()
	if obj, ok := s.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	s.objects[key] = obj
	return obj, nil
}

// Load returns the cached object for key, calling loadFunc to build it the
// first time. Failed loads are not cached.
func Load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	return globalStore.get(cfg, key, loadFunc)
}

// Evict drops key so that the next Load rebuilds it. It reports whether
// anything was cached.
func Evict(key string) bool {
	globalStore.Lock()
	defer globalStore.Unlock()
	_, ok := globalStore.objects[key]
	delete(globalStore.objects, key)
	return ok
}
