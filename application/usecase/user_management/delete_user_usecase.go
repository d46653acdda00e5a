package user_management

import (
	"context"
	"errors"

	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
)

type DeleteUserUseCase struct {
	userRepo outbound.UserRepository
}

func NewDeleteUserUseCase(userRepo outbound.UserRepository) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, userID string) error {
	if userID == "" {
		return apperror.MissingField("id")
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return apperror.NotFound("User")
		}
		return apperror.Upstream("credential store", err)
	}
	return nil
}
