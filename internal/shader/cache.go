package shader

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/shaderkit/internal/logger"
)

// SourceCache loads a fixed set of sources once and serves them for the
// rest of the process lifetime.
//
// Population happens at most once. A failed Preload leaves the cache empty
// so it can be retried; after the first successful Preload every call
// returns the cached set without touching storage, whatever platform tag
// it is given.
type SourceCache struct {
	storage Storage
	refs    []Ref
	log     *zap.Logger

	mu     sync.Mutex // serializes population
	loaded atomic.Bool

	// Written once under mu before loaded is set, read-only afterwards.
	sources  []Source
	byName   map[string]int
	platform string
}

// NewSourceCache creates an empty cache for refs read from st.
func NewSourceCache(st Storage, refs []Ref, log *zap.Logger) *SourceCache {
	if log == nil {
		log = logger.Named("shader")
	}
	return &SourceCache{
		storage: st,
		refs:    append([]Ref(nil), refs...),
		log:     log,
	}
}

// Preload loads every source concurrently and waits for all of them.
// The returned slice follows the order of the refs given to NewSourceCache.
func (c *SourceCache) Preload(platform string) ([]Source, error) {
	if c.loaded.Load() {
		return c.snapshot(), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Lost the race to another caller that already populated the cache.
	if c.loaded.Load() {
		return c.snapshot(), nil
	}

	c.log.Debug("preloading shader sources",
		zap.Int("count", len(c.refs)),
		zap.String("platform", platform),
	)

	loaded := make([]Source, len(c.refs))
	var g errgroup.Group
	for i, ref := range c.refs {
		g.Go(func() error {
			src, err := Load(c.storage, ref, platform)
			if err != nil {
				return err
			}
			loaded[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Error("shader preload failed", zap.Error(err))
		return nil, err
	}

	byName := make(map[string]int, len(loaded))
	for i, src := range loaded {
		byName[src.Name] = i
	}
	c.sources = loaded
	c.byName = byName
	c.platform = platform
	c.loaded.Store(true)

	c.log.Info("shader sources loaded",
		zap.Int("count", len(loaded)),
		zap.String("platform", platform),
	)
	return c.snapshot(), nil
}

// Loaded reports whether a Preload has succeeded.
func (c *SourceCache) Loaded() bool {
	return c.loaded.Load()
}

// Platform returns the platform tag captured by the successful Preload.
func (c *SourceCache) Platform() string {
	if !c.loaded.Load() {
		return ""
	}
	return c.platform
}

// Get returns a cached source by name.
func (c *SourceCache) Get(name string) (Source, bool) {
	if !c.loaded.Load() {
		return Source{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return Source{}, false
	}
	return c.sources[i], true
}

// Len returns the number of cached sources.
func (c *SourceCache) Len() int {
	if !c.loaded.Load() {
		return 0
	}
	return len(c.sources)
}

func (c *SourceCache) snapshot() []Source {
	return append([]Source(nil), c.sources...)
}
