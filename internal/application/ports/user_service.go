package ports

import (
	"context"

	"user-registry-api/internal/domain/user"
)

type UserCreateService interface {
	CreateUser(ctx context.Context, raw *user.CreateData) error
}

type UserListService interface {
	ListUsers(ctx context.Context) ([]user.Mapped, error)
}
