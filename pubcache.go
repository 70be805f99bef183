package mediagate

import (
	"context"
	"sync"
	"time"
)

// PublicationCache is a small TTL cache in front of a PublicationSource.
// Crawlers tend to hit a fresh preview URL in bursts (several bots within
// seconds of a share), so one lookup serves the burst. Transformed image
// bytes are never cached here or anywhere else in the process.
type PublicationCache struct {
	mu      sync.RWMutex
	entries map[string]cachedPublication
	ttl     time.Duration
	source  PublicationSource
}

type cachedPublication struct {
	pub     Publication
	fetched time.Time
}

// NewPublicationCache wraps source with a TTL cache.
func NewPublicationCache(source PublicationSource, ttl time.Duration) *PublicationCache {
	return &PublicationCache{
		entries: make(map[string]cachedPublication),
		ttl:     ttl,
		source:  source,
	}
}

// GetPublication returns the cached publication when fresh, otherwise asks
// the underlying source. Lookup failures are not cached.
func (c *PublicationCache) GetPublication(ctx context.Context, id string) (Publication, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if ok && time.Since(entry.fetched) < c.ttl {
		return entry.pub, nil
	}

	pub, err := c.source.GetPublication(ctx, id)
	if err != nil {
		return Publication{}, err
	}

	c.mu.Lock()
	c.entries[id] = cachedPublication{pub: pub, fetched: time.Now()}
	c.mu.Unlock()
	return pub, nil
}

// Invalidate clears the cache so the next lookup hits the source.
func (c *PublicationCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cachedPublication)
	c.mu.Unlock()
}
