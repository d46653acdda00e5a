package user_management

import (
	"context"

	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
	"github.com/shopcore/shopcore/domain/entity"
)

type ListUsersUseCase struct {
	userRepo outbound.UserRepository
}

func NewListUsersUseCase(userRepo outbound.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]entity.Summary, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Upstream("credential store", err)
	}

	summaries := make([]entity.Summary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}
