package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs --no-cache and stands in when no cache
// directory can be determined; every lookup misses, so each render runs the
// full pipeline. Unseeded mixed renders skip the cache on their own and never
// reach it.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get reports a miss for every key.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
