package store

import (
	"github.com/twbeatles/klotto-generator/internal/model"
)

// defaultCacheLimit caps the draw cache when no option overrides it.
const defaultCacheLimit = 100

// DrawCache is a bounded JSON fallback holding the newest official
// draws. The stats command refreshes it after every successful database
// read and falls back to it when the database cannot be opened, so
// statistics keep working from a copied-around data directory without
// the SQLite file.
type DrawCache struct {
	path  string
	limit int
}

// DrawCacheOption configures a DrawCache.
type DrawCacheOption func(*DrawCache)

// WithCacheLimit overrides how many draws the cache keeps.
func WithCacheLimit(n int) DrawCacheOption {
	return func(c *DrawCache) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewDrawCache creates a cache backed by the file at path.
func NewDrawCache(path string, opts ...DrawCacheOption) *DrawCache {
	c := &DrawCache{
		path:  path,
		limit: defaultCacheLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Save stores the newest draws, truncating to the cache limit.
// The input is expected newest first, matching database reads.
func (c *DrawCache) Save(draws []model.Draw) error {
	if len(draws) > c.limit {
		draws = draws[:c.limit]
	}
	return writeJSONFileAtomic(c.path, draws)
}

// Load returns the cached draws, newest first. A missing cache file
// yields an empty slice.
func (c *DrawCache) Load() ([]model.Draw, error) {
	var draws []model.Draw
	if err := readJSONFile(c.path, &draws); err != nil {
		return nil, err
	}
	return draws, nil
}
