package cache

import (
	"context"
	"time"
)

// TTL tiers shared by the report endpoints.
const (
	TTLShort  = 1 * time.Minute
	TTLMedium = 5 * time.Minute
	TTLLong   = 30 * time.Minute
)

// Store is the key-value contract the report pipeline depends on. The cache
// is advisory: implementations absorb backend failures and report a miss
// rather than surfacing an error, so correctness never depends on cache
// availability.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	DeleteByPattern(ctx context.Context, pattern string)
}

// Noop satisfies Store when no cache backend is configured. Every read is a
// miss and writes are discarded.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}
func (Noop) DeleteByPattern(context.Context, string) {}
