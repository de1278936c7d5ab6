package handlers

import (
	"sync"
	"time"

	"github.com/openstudio-standards/osstd/standards"
)

// DefaultCacheTTL is how long an unused Standard is kept.
const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	std      *standards.Standard
	lastUsed time.Time
}

// StandardCache keeps one Standard per template and customization so the
// curve library and other lazily built state survive across requests.
type StandardCache struct {
	data *standards.Data // nil uses the embedded data
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewStandardCache returns a cache building Standards over data. A ttl of
// zero uses DefaultCacheTTL.
func NewStandardCache(data *standards.Data, ttl time.Duration) *StandardCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &StandardCache{
		data:    data,
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]*cacheEntry{},
	}
}

// Get returns the cached Standard for template and custom, building it on
// a miss. Entries idle for longer than the TTL are dropped.
func (c *StandardCache) Get(template, custom string) (*standards.Standard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.lastUsed) > c.ttl {
			delete(c.entries, k)
		}
	}

	key := template + "\x00" + custom
	if e, ok := c.entries[key]; ok {
		e.lastUsed = now
		return e.std, nil
	}
	opts := []standards.Option{standards.WithCustom(custom)}
	if c.data != nil {
		opts = append(opts, standards.WithData(c.data))
	}
	std, err := standards.NewStandard(template, opts...)
	if err != nil {
		return nil, err
	}
	c.entries[key] = &cacheEntry{std: std, lastUsed: now}
	return std, nil
}

// Len reports the number of cached Standards.
func (c *StandardCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Data returns the tables the cached Standards use.
func (c *StandardCache) Data() (*standards.Data, error) {
	if c.data != nil {
		return c.data, nil
	}
	return standards.DefaultData()
}
