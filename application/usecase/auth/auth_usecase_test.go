package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/service/jwt"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
	"github.com/shopcore/shopcore/infrastructure/service/password"
	"github.com/shopcore/shopcore/infrastructure/service/revocation"
)

type memoryUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (r *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return outbound.ErrUserNotFound
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return outbound.ErrUserNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func (r *memoryUserRepo) FindAll(context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	return users, nil
}

type recordingMailer struct {
	sent []string // "to|subject|body"
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to+"|"+subject+"|"+body)
	return nil
}

type fixture struct {
	uc       inbound.AuthUseCase
	repo     *memoryUserRepo
	mailer   *recordingMailer
	registry *revocation.MemoryRegistry
	tokens   *jwt.JWTService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := jwt.NewJWTService("test-secret")
	require.NoError(t, err)

	registry := revocation.NewMemoryRegistry(time.Minute)
	t.Cleanup(func() { registry.Close() })

	repo := newMemoryUserRepo()
	mailer := &recordingMailer{}

	uc := NewUseCase(
		repo,
		tokens,
		password.NewBcryptPasswordService(4),
		registry,
		mailer,
		logger.Noop(),
		time.Hour,
		time.Hour,
		"http://localhost:3000",
	)

	return &fixture{uc: uc, repo: repo, mailer: mailer, registry: registry, tokens: tokens}
}

func (f *fixture) register(t *testing.T) *inbound.RegisterResponse {
	t.Helper()
	resp, err := f.uc.Register(context.Background(), inbound.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)

	resp := f.register(t)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, entity.RoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	login, err := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, 3600, login.ExpiresIn)

	user, err := f.uc.ValidateToken(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	_, err := f.uc.Register(context.Background(), inbound.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another-pass",
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeDuplicateEmail, appErr.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), inbound.RegisterRequest{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "pass-word-1",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestLoginFailureIsUniform(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	_, errUnknown := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	_, errWrongPass := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)

	// Unknown email and wrong password must be indistinguishable to a caller.
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

	var appErr *apperror.AppError
	require.ErrorAs(t, errUnknown, &appErr)
	assert.Equal(t, apperror.CodeInvalidCredentials, appErr.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	resp := f.register(t)

	_, err := f.uc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), resp.Token))

	_, err = f.uc.ValidateToken(context.Background(), resp.Token)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeTokenRevoked, appErr.Code)
}

func TestLogoutWithoutToken(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Logout(context.Background(), "")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeNoToken, appErr.Code)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	// Unknown address still succeeds, and nothing is dispatched.
	require.NoError(t, f.uc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.mailer.sent)
}

func TestForgotPasswordSendsResetLink(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	require.NoError(t, f.uc.ForgotPassword(context.Background(), "alice@example.com"))
	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0], "alice@example.com|Password Reset|")
	assert.Contains(t, f.mailer.sent[0], "http://localhost:3000/reset-password/")
}

func TestResetPasswordFlow(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	require.NoError(t, f.uc.ForgotPassword(context.Background(), "alice@example.com"))
	require.Len(t, f.mailer.sent, 1)
	ticket := f.ticketFromMail(t)

	require.NoError(t, f.uc.ResetPassword(context.Background(), ticket, "brand-new-pass"))

	// Old password no longer works, new one does.
	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	assert.Error(t, err)

	_, err = f.uc.Login(context.Background(), inbound.LoginRequest{
		Email:    "alice@example.com",
		Password: "brand-new-pass",
	})
	assert.NoError(t, err)
}

func TestResetTicketIsSingleUse(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	require.NoError(t, f.uc.ForgotPassword(context.Background(), "alice@example.com"))
	ticket := f.ticketFromMail(t)

	require.NoError(t, f.uc.ResetPassword(context.Background(), ticket, "first-new-pass"))

	err := f.uc.ResetPassword(context.Background(), ticket, "second-new-pass")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidTicket, appErr.Code)
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	f := newFixture(t)
	resp := f.register(t)

	// A session token must not work as a reset ticket.
	err := f.uc.ResetPassword(context.Background(), resp.Token, "sneaky-new-pass")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidTicket, appErr.Code)
}

func TestValidateTokenRejectsResetTicket(t *testing.T) {
	f := newFixture(t)
	resp := f.register(t)

	ticket, err := f.tokens.Issue(outbound.TokenClaims{
		UserID:  resp.User.ID,
		Purpose: outbound.PurposeReset,
	}, time.Hour)
	require.NoError(t, err)

	_, err = f.uc.ValidateToken(context.Background(), ticket)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidToken, appErr.Code)
}

func TestValidateTokenAccountGone(t *testing.T) {
	f := newFixture(t)
	resp := f.register(t)

	require.NoError(t, f.repo.Delete(context.Background(), resp.User.ID))

	_, err := f.uc.ValidateToken(context.Background(), resp.Token)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeAccountGone, appErr.Code)
}

// ticketFromMail pulls the reset ticket back out of the last mail body.
func (f *fixture) ticketFromMail(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.mailer.sent)
	body := f.mailer.sent[len(f.mailer.sent)-1]
	idx := strings.LastIndex(body, "/reset-password/")
	require.GreaterOrEqual(t, idx, 0)
	return body[idx+len("/reset-password/"):]
}
