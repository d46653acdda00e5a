package user_management

import (
	"context"
	"errors"
	"time"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
	"github.com/shopcore/shopcore/domain/entity"
)

type UpdateUserUseCase struct {
	userRepo outbound.UserRepository
}

func NewUpdateUserUseCase(userRepo outbound.UserRepository) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo}
}

// Execute merges only the fields present in the request. Presence is carried
// by pointers, so an explicit empty string reaches validation instead of
// being silently skipped.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, userID string, req inbound.UpdateUserRequest) (*entity.Summary, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, apperror.Upstream("credential store", err)
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := uc.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, apperror.Upstream("credential store", err)
		}
		if exists {
			return nil, apperror.DuplicateEmail()
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, apperror.Upstream("credential store", err)
	}

	summary := user.Summary()
	return &summary, nil
}

func validateUpdateRequest(req inbound.UpdateUserRequest) error {
	if req.Username != nil && *req.Username == "" {
		return apperror.Validation("Username cannot be empty")
	}
	if req.Email != nil && *req.Email == "" {
		return apperror.Validation("Email cannot be empty")
	}
	if req.Role != nil && !entity.ValidRole(*req.Role) {
		return apperror.Validation("Invalid role")
	}
	return nil
}
