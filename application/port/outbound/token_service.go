package outbound

import (
	"errors"
	"time"
)

// TokenPurpose discriminates what a signed token may be used for. A reset
// ticket must never pass a check expecting a session token, and vice versa.
type TokenPurpose string

const (
	PurposeSession TokenPurpose = "session"
	PurposeReset   TokenPurpose = "reset"
)

type TokenClaims struct {
	UserID  string
	Email   string
	Role    string
	Purpose TokenPurpose
}

var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidSignature  = errors.New("token signature invalid")
	ErrWrongTokenPurpose = errors.New("token purpose mismatch")
)

type TokenService interface {
	Issue(claims TokenClaims, ttl time.Duration) (string, error)
	// Verify checks signature and expiry, then rejects the token unless its
	// purpose matches the expected one.
	Verify(token string, expected TokenPurpose) (*TokenClaims, error)
	// RemainingValidity reports how long the token would still be accepted,
	// ignoring signature state. Used to bound revocation entries.
	RemainingValidity(token string) time.Duration
}
