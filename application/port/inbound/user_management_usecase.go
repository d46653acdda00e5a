package inbound

import (
	"context"

	"github.com/shopcore/shopcore/domain/entity"
)

// UpdateUserRequest carries optional fields; nil means "leave unchanged".
// An explicit empty string is a deliberate (and rejected) value, not a skip.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

type UserManagementUseCase interface {
	ListUsers(ctx context.Context) ([]entity.Summary, error)
	UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*entity.Summary, error)
	DeleteUser(ctx context.Context, userID string) error
}
