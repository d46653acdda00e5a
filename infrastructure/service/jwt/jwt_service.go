package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopcore/shopcore/application/port/outbound"
)

// tokenClaims is the wire shape of every token this service signs. Purpose
// distinguishes session tokens from password-reset tickets so one can never
// be replayed as the other.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	return &JWTService{secret: []byte(secret)}, nil
}

func (s *JWTService) Issue(claims outbound.TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		Purpose: string(claims.Purpose),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string, expected outbound.TokenPurpose) (*outbound.TokenClaims, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, mapValidationError(err)
	}
	if !token.Valid {
		return nil, outbound.ErrInvalidSignature
	}

	if outbound.TokenPurpose(claims.Purpose) != expected {
		return nil, outbound.ErrWrongTokenPurpose
	}

	return &outbound.TokenClaims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		Purpose: outbound.TokenPurpose(claims.Purpose),
	}, nil
}

// RemainingValidity decodes the expiry without trusting the signature; the
// result only bounds how long a revocation entry needs to live.
func (s *JWTService) RemainingValidity(tokenString string) time.Duration {
	claims := &tokenClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return outbound.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return outbound.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return outbound.ErrTokenMalformed
	default:
		return outbound.ErrTokenMalformed
	}
}
