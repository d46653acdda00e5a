package inbound

import (
	"context"

	"github.com/shopcore/shopcore/domain/entity"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	User  entity.Summary `json:"user"`
	Token string         `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type AuthUseCase interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	// Logout revokes the presented token for the rest of its validity window.
	Logout(ctx context.Context, token string) error
	// ForgotPassword responds identically whether or not the email exists;
	// a reset link is dispatched only when it does.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, ticket, newPassword string) error
	// ValidateToken verifies a session token and resolves its account.
	ValidateToken(ctx context.Context, token string) (*entity.User, error)
}
