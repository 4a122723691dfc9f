// Package cache provides the short-lived insight cache. The insight engine
// itself is stateless; callers cache its ranked output per user per day.
package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store with per-entry expiry
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
