package user_management

import (
	"context"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/entity"
)

type UseCaseImpl struct {
	listUsersUseCase  *ListUsersUseCase
	updateUserUseCase *UpdateUserUseCase
	deleteUserUseCase *DeleteUserUseCase
}

func NewUserManagementUseCase(userRepo outbound.UserRepository) inbound.UserManagementUseCase {
	return &UseCaseImpl{
		listUsersUseCase:  NewListUsersUseCase(userRepo),
		updateUserUseCase: NewUpdateUserUseCase(userRepo),
		deleteUserUseCase: NewDeleteUserUseCase(userRepo),
	}
}

func (uc *UseCaseImpl) ListUsers(ctx context.Context) ([]entity.Summary, error) {
	return uc.listUsersUseCase.Execute(ctx)
}

func (uc *UseCaseImpl) UpdateUser(ctx context.Context, userID string, req inbound.UpdateUserRequest) (*entity.Summary, error) {
	return uc.updateUserUseCase.Execute(ctx, userID, req)
}

func (uc *UseCaseImpl) DeleteUser(ctx context.Context, userID string) error {
	return uc.deleteUserUseCase.Execute(ctx, userID)
}
