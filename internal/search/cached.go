package search

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/ppiankov/veracity/internal/cache"
	"github.com/ppiankov/veracity/internal/model"
)

// CachedProvider wraps a provider with response caching so repeated
// queries within the TTL do not hit the network. Failures are never
// cached.
type CachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps a provider with the given cache store
func NewCachedProvider(inner Provider, store cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, store: store, ttl: ttl}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Search serves from cache when possible, falling through to the wrapped
// provider otherwise
func (p *CachedProvider) Search(ctx context.Context, query string, maxResults int) ([]model.SearchHit, error) {
	key := cache.Key(p.inner.Name() + "|" + strconv.Itoa(maxResults) + "|" + query)

	if data, found := p.store.Get(key); found {
		var hits []model.SearchHit
		if err := json.Unmarshal(data, &hits); err == nil {
			return hits, nil
		}
		// Corrupt entry; drop it and refetch
		_ = p.store.Delete(key)
	}

	hits, err := p.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hits); err == nil {
		_ = p.store.Set(key, data, p.ttl)
	}
	return hits, nil
}
