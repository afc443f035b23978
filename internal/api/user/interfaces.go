package user

import (
	"context"

	"github.com/pcforge/builder-backend/internal/entity"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	UpdateUser(ctx context.Context, id string, req *entity.UpdateUserRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}
