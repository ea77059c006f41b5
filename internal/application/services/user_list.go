package services

import (
	"context"
	"errors"
	"fmt"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

type UserListService struct {
	users  user.Repository
	logger ports.Logger
}

func NewUserListService(users user.Repository, logger ports.Logger) ports.UserListService {
	return &UserListService{
		users:  users,
		logger: logger.WithContext(ports.Fields{"service": "UserListService"}),
	}
}

func (s *UserListService) ListUsers(ctx context.Context) ([]user.Mapped, error) {
	s.logger.Info("listing users")

	us, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", ports.Fields{
			"error_name":    apperror.NameOf(err),
			"error_message": err.Error(),
			"stack":         apperror.StackOf(err),
		})
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		if err.Error() == "" {
			err = errors.New("unknown error")
		}
		return nil, apperror.Server(fmt.Errorf("erro ao listar usuários: %w", err))
	}

	mapped := us.Mapped()
	s.logger.Info("users listed", ports.Fields{"count": len(mapped)})

	return mapped, nil
}
