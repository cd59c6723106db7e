package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles how fast records are emitted.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative recordsPerSecond for no rate limiting.
func New(recordsPerSecond float64) *Limiter {
	if recordsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: the first record goes out immediately, the rest are spaced.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(recordsPerSecond), 1),
	}
}

// Wait blocks until the next record may be emitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the configured rate, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
