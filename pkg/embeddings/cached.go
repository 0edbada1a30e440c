package embeddings

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached wraps an Embedder with an in-memory LRU keyed on the input
// text, so repeated comparisons of the same text hit the provider once.
// Vectors are copied on the way in and out; callers cannot mutate
// cached state.
type Cached struct {
	inner Embedder
	cache *lru.Cache[string, []float64]
}

// NewCached wraps inner with an LRU of the given capacity.
func NewCached(inner Embedder, size int) (*Cached, error) {
	cache, err := lru.New[string, []float64](size)
	if err != nil {
		return nil, fmt.Errorf("could not create embedding cache: %w", err)
	}

	return &Cached{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector for text, falling through to the
// wrapped embedder on a miss. Failed lookups are not cached.
func (c *Cached) Embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := c.cache.Get(text); ok {
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	}

	v, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	stored := make([]float64, len(v))
	copy(stored, v)
	c.cache.Add(text, stored)

	return v, nil
}

// Close purges the cache and closes the wrapped embedder.
func (c *Cached) Close() error {
	c.cache.Purge()
	return c.inner.Close()
}

// Unwrap returns the wrapped embedder, exposing its capabilities to the
// As* helpers.
func (c *Cached) Unwrap() Embedder {
	return c.inner
}

// Len reports the number of cached embeddings.
func (c *Cached) Len() int {
	return c.cache.Len()
}

var (
	_ Embedder  = (*Cached)(nil)
	_ Unwrapper = (*Cached)(nil)
)
