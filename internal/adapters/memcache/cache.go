// Package memcache is the default Cache backend: a process-lifetime map with
// per-entry TTLs. Entries are stored as marshaled JSON snapshots so a cached
// value can never be mutated in place by a caller.
package memcache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/0x-m1cro/mv-travel/internal/adapters/observability"
)

type entry struct {
	data      []byte
	timestamp time.Time
	ttl       time.Duration
}

type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

const DefaultTTL = 5 * time.Minute

func New() *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
}

// Key builds a deterministic cache key from an operation prefix and its
// parameter set. Parameters are serialized with keys sorted lexicographically
// so argument order never changes cache identity.
func Key(prefix string, params map[string]any) string {
	if len(params) == 0 {
		return prefix + ":{}"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(":{")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(params[k])
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.String()
}

// Get reports whether key is live, unmarshaling the stored snapshot into dst.
// An expired entry is evicted on the spot and treated as a miss.
func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	if c.expired(e, c.now()) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if cur, still := c.entries[key]; still && c.expired(cur, c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.data, dst)
}

// Set stores v under key. A non-positive ttl falls back to the default.
func (c *Cache) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{data: b, timestamp: c.now(), ttl: ttl}
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Sweep removes all expired entries in one pass. Meant for a timer, not the
// request path; Get already evicts lazily.
func (c *Cache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.Sweep()
			}
		}
	}()
}

// Len reports the number of live and expired-but-unswept entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return now.Sub(e.timestamp) > e.ttl
}
