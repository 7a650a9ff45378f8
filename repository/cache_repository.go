package repository

import (
	"context"
	"time"
)

// CacheRepository is a string key/value store with per-entry expiry.
// A zero ttl keeps the entry until it is overwritten or deleted. Get
// reports an absent key as ok == false with a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
