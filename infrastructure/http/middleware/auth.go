package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/http/response"
)

type contextKey string

const (
	authUserKey  contextKey = "auth_user"
	authTokenKey contextKey = "auth_token"
)

// AuthMiddleware runs the per-request authentication chain: extract the
// bearer token, consult the revocation registry, verify signature/expiry
// with purpose=session, then resolve the account. The chain is identical for
// every protected route.
type AuthMiddleware struct {
	tokens      outbound.TokenService
	revocations outbound.RevocationRegistry
	users       outbound.UserRepository
}

func NewAuthMiddleware(
	tokens outbound.TokenService,
	revocations outbound.RevocationRegistry,
	users outbound.UserRepository,
) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revocations: revocations, users: users}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := ExtractBearerToken(r)
		if !ok {
			CountAuthRejection("no_token")
			response.Unauthorized(w, "No token provided")
			return
		}

		revoked, err := m.revocations.IsRevoked(r.Context(), token)
		if err != nil {
			response.InternalServerError(w, "Internal server error")
			return
		}
		if revoked {
			CountAuthRejection("revoked")
			response.Unauthorized(w, "Token is invalidated")
			return
		}

		claims, err := m.tokens.Verify(token, outbound.PurposeSession)
		if err != nil {
			CountAuthRejection("invalid_or_expired")
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := m.users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, outbound.ErrUserNotFound) {
				CountAuthRejection("account_gone")
				response.Unauthorized(w, "User not found")
				return
			}
			response.InternalServerError(w, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), authUserKey, user)
		ctx = context.WithValue(ctx, authTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole gates a route on the resolved account's role. It must run
// inside RequireAuth.
func (m *AuthMiddleware) RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			response.Unauthorized(w, "No token provided")
			return
		}
		if user.Role != role {
			CountAuthRejection("forbidden")
			response.Forbidden(w, "Forbidden, Admin access only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractBearerToken pulls the token out of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserFromContext returns the account resolved by RequireAuth, or nil.
func UserFromContext(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(authUserKey).(*entity.User); ok {
		return user
	}
	return nil
}

// TokenFromContext returns the raw bearer token seen by RequireAuth.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(authTokenKey).(string); ok {
		return token
	}
	return ""
}
