package domain

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry TTLs. Values are stored as an
// immutable snapshot; Get unmarshals into dst and reports whether the key was
// live. Backends must never return an entry past its TTL.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
