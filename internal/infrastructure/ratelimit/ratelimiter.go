// Package ratelimit implements sliding-window request limits shared by every
// replica through Redis.
package ratelimit

import (
	"context"
	"time"
)

// Limits holds the per-window ceilings. A zero value disables the window.
type Limits struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	// Count returns the requests recorded for key in the window ending now.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
