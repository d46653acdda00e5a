package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/service/jwt"
	"github.com/shopcore/shopcore/infrastructure/service/revocation"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, outbound.ErrUserNotFound
}
func (f *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) Create(context.Context, *entity.User) error          { return nil }
func (f *fakeUserRepo) Update(context.Context, *entity.User) error          { return nil }
func (f *fakeUserRepo) Delete(context.Context, string) error                { return nil }
func (f *fakeUserRepo) FindAll(context.Context) ([]*entity.User, error)     { return nil, nil }

type authFixture struct {
	middleware *AuthMiddleware
	tokens     *jwt.JWTService
	registry   *revocation.MemoryRegistry
	user       *entity.User
}

func newAuthFixture(t *testing.T, role string) *authFixture {
	t.Helper()

	tokens, err := jwt.NewJWTService("test-secret")
	require.NoError(t, err)

	registry := revocation.NewMemoryRegistry(time.Minute)
	t.Cleanup(func() { registry.Close() })

	user := entity.NewUser("user-1", "alice", "alice@example.com", "hash", role)
	repo := &fakeUserRepo{users: map[string]*entity.User{user.ID: user}}

	return &authFixture{
		middleware: NewAuthMiddleware(tokens, registry, repo),
		tokens:     tokens,
		registry:   registry,
		user:       user,
	}
}

func (f *authFixture) sessionToken(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.Issue(outbound.TokenClaims{
		UserID:  f.user.ID,
		Email:   f.user.Email,
		Role:    f.user.Role,
		Purpose: outbound.PurposeSession,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(handler http.HandlerFunc, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth_NoToken(t *testing.T) {
	f := newAuthFixture(t, entity.RoleCustomer)

	rec := doRequest(f.middleware.RequireAuth(okHandler), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed header counts as no token.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec = httptest.NewRecorder()
	f.middleware.RequireAuth(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	f := newAuthFixture(t, entity.RoleCustomer)

	var seen *entity.User
	handler := f.middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := doRequest(handler, f.sessionToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	f := newAuthFixture(t, entity.RoleCustomer)
	token := f.sessionToken(t)

	rec := doRequest(f.middleware.RequireAuth(okHandler), token)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, f.registry.Revoke(context.Background(), token, time.Hour))

	// A revoked token keeps failing even though it is signed and unexpired.
	rec = doRequest(f.middleware.RequireAuth(okHandler), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doRequest(f.middleware.RequireAuth(okHandler), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ResetTicketRejected(t *testing.T) {
	f := newAuthFixture(t, entity.RoleCustomer)

	ticket, err := f.tokens.Issue(outbound.TokenClaims{
		UserID:  f.user.ID,
		Purpose: outbound.PurposeReset,
	}, time.Hour)
	require.NoError(t, err)

	rec := doRequest(f.middleware.RequireAuth(okHandler), ticket)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_AccountGone(t *testing.T) {
	f := newAuthFixture(t, entity.RoleCustomer)

	token, err := f.tokens.Issue(outbound.TokenClaims{
		UserID:  "deleted-user",
		Purpose: outbound.PurposeSession,
	}, time.Hour)
	require.NoError(t, err)

	rec := doRequest(f.middleware.RequireAuth(okHandler), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	customer := newAuthFixture(t, entity.RoleCustomer)
	rec := doRequest(customer.middleware.RequireRole(entity.RoleAdmin, okHandler), customer.sessionToken(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := newAuthFixture(t, entity.RoleAdmin)
	rec = doRequest(admin.middleware.RequireRole(entity.RoleAdmin, okHandler), admin.sessionToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ExtractBearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, ok := ExtractBearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	req.Header.Set("Authorization", "Bearer ")
	_, ok = ExtractBearerToken(req)
	assert.False(t, ok)
}
