package ratelimit

import (
	"context"
	"time"
)

// NoopLimiter allows everything; used when rate limiting is disabled.
type NoopLimiter struct{}

func NewNoopLimiter() *NoopLimiter { return &NoopLimiter{} }

func (*NoopLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

func (*NoopLimiter) Close() error { return nil }
