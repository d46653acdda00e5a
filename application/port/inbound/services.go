package inbound

import (
	"context"
	"time"
)

// RateLimitService is consulted by the HTTP layer before hitting the
// credential store on login and forgot-password.
type RateLimitService interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Close() error
}
