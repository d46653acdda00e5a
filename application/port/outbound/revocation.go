package outbound

import (
	"context"
	"time"
)

// RevocationRegistry records tokens that must be rejected before their
// natural expiry. Implementations must be safe for concurrent use and keep
// entries only for the supplied ttl, after which the token would have
// expired anyway.
type RevocationRegistry interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Close() error
}
