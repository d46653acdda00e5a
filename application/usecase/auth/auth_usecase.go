package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// UseCase orchestrates registration, login, logout, token validation and the
// password reset flow.
type UseCase struct {
	users       outbound.UserRepository
	tokens      outbound.TokenService
	passwords   outbound.PasswordService
	revocations outbound.RevocationRegistry
	mailer      outbound.Mailer
	log         logger.Logger

	sessionTTL  time.Duration
	resetTTL    time.Duration
	frontendURL string
}

func NewUseCase(
	users outbound.UserRepository,
	tokens outbound.TokenService,
	passwords outbound.PasswordService,
	revocations outbound.RevocationRegistry,
	mailer outbound.Mailer,
	log logger.Logger,
	sessionTTL time.Duration,
	resetTTL time.Duration,
	frontendURL string,
) inbound.AuthUseCase {
	return &UseCase{
		users:       users,
		tokens:      tokens,
		passwords:   passwords,
		revocations: revocations,
		mailer:      mailer,
		log:         log,
		sessionTTL:  sessionTTL,
		resetTTL:    resetTTL,
		frontendURL: frontendURL,
	}
}

func (uc *UseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*inbound.RegisterResponse, error) {
	if req.Username == "" {
		return nil, apperror.MissingField("username")
	}
	if req.Email == "" {
		return nil, apperror.MissingField("email")
	}
	if req.Password == "" {
		return nil, apperror.MissingField("password")
	}
	role := req.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.ValidRole(role) {
		return nil, apperror.Validation("Invalid role")
	}

	exists, err := uc.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Upstream("credential store", err)
	}
	if exists {
		return nil, apperror.DuplicateEmail()
	}

	hashed, err := uc.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := entity.NewUser(uuid.New().String(), req.Username, req.Email, hashed, role)
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, apperror.Upstream("credential store", err)
	}

	token, err := uc.issueSession(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	uc.log.Info(ctx, "user registered", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return &inbound.RegisterResponse{User: user.Summary(), Token: token}, nil
}

func (uc *UseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	if req.Email == "" {
		return nil, apperror.MissingField("email")
	}
	if req.Password == "" {
		return nil, apperror.MissingField("password")
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			// Same failure as a wrong password; callers cannot probe for
			// registered addresses.
			uc.log.Info(ctx, "login failed", map[string]interface{}{"reason": "unknown email"})
			return nil, apperror.InvalidCredentials()
		}
		return nil, apperror.Upstream("credential store", err)
	}

	ok, err := uc.passwords.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		uc.log.Info(ctx, "login failed", map[string]interface{}{
			"reason":  "wrong password",
			"user_id": user.ID,
		})
		return nil, apperror.InvalidCredentials()
	}

	token, err := uc.issueSession(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	uc.log.Info(ctx, "login succeeded", map[string]interface{}{"user_id": user.ID})

	return &inbound.LoginResponse{
		Token:     token,
		ExpiresIn: int(uc.sessionTTL.Seconds()),
	}, nil
}

func (uc *UseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperror.NoToken()
	}

	// Revoke for the remaining validity window only; past that the token is
	// dead on its own and the registry entry would be garbage.
	ttl := uc.tokens.RemainingValidity(token)
	if err := uc.revocations.Revoke(ctx, token, ttl); err != nil {
		return apperror.Upstream("revocation registry", err)
	}

	uc.log.Info(ctx, "token revoked on logout", map[string]interface{}{
		"remaining_ttl": ttl.String(),
	})
	return nil
}

func (uc *UseCase) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperror.MissingField("email")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			// Respond exactly as in the success path so the endpoint cannot
			// be used to enumerate accounts.
			uc.log.Info(ctx, "reset requested for unknown email", nil)
			return nil
		}
		return apperror.Upstream("credential store", err)
	}

	ticket, err := uc.tokens.Issue(outbound.TokenClaims{
		UserID:  user.ID,
		Purpose: outbound.PurposeReset,
	}, uc.resetTTL)
	if err != nil {
		return apperror.Internal(err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", uc.frontendURL, ticket)
	body := fmt.Sprintf("You requested a password reset. Click the link to reset your password: %s", resetLink)

	if err := uc.mailer.Send(ctx, user.Email, "Password Reset", body); err != nil {
		return apperror.Upstream("notification sink", err)
	}

	uc.log.Info(ctx, "reset ticket dispatched", map[string]interface{}{"user_id": user.ID})
	return nil
}

func (uc *UseCase) ResetPassword(ctx context.Context, ticket, newPassword string) error {
	if newPassword == "" {
		return apperror.MissingField("newPassword")
	}

	revoked, err := uc.revocations.IsRevoked(ctx, ticket)
	if err != nil {
		return apperror.Upstream("revocation registry", err)
	}
	if revoked {
		return apperror.InvalidTicket()
	}

	claims, err := uc.tokens.Verify(ticket, outbound.PurposeReset)
	if err != nil {
		return apperror.InvalidTicket()
	}

	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return apperror.AccountGone()
		}
		return apperror.Upstream("credential store", err)
	}

	hashed, err := uc.passwords.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	user.Password = hashed
	user.UpdatedAt = time.Now().UTC()

	if err := uc.users.Update(ctx, user); err != nil {
		return apperror.Upstream("credential store", err)
	}

	// Tickets are single-use: burn this one for its remaining lifetime so a
	// leaked reset link cannot be replayed.
	if err := uc.revocations.Revoke(ctx, ticket, uc.tokens.RemainingValidity(ticket)); err != nil {
		uc.log.Error(ctx, "failed to burn reset ticket", err, map[string]interface{}{
			"user_id": user.ID,
		})
	}

	uc.log.Info(ctx, "password reset completed", map[string]interface{}{"user_id": user.ID})
	return nil
}

func (uc *UseCase) ValidateToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.NoToken()
	}

	revoked, err := uc.revocations.IsRevoked(ctx, token)
	if err != nil {
		return nil, apperror.Upstream("revocation registry", err)
	}
	if revoked {
		return nil, apperror.TokenRevoked()
	}

	claims, err := uc.tokens.Verify(token, outbound.PurposeSession)
	if err != nil {
		return nil, apperror.InvalidToken(err.Error())
	}

	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperror.AccountGone()
		}
		return nil, apperror.Upstream("credential store", err)
	}
	return user, nil
}

func (uc *UseCase) issueSession(user *entity.User) (string, error) {
	return uc.tokens.Issue(outbound.TokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Purpose: outbound.PurposeSession,
	}, uc.sessionTTL)
}
