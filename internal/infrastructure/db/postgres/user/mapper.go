package user

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "user-registry-api/internal/domain/user"
)

func toDBModel(nu domain.NewUser) *User {
	return &User{
		ID:           uuid.NewString(),
		Name:         nu.Name,
		Email:        strings.ToLower(strings.TrimSpace(nu.Email)),
		Phone:        nu.Phone,
		Birthdate:    nu.Birthdate,
		AvatarURL:    domain.DefaultAvatarURL,
		Role:         string(domain.RoleCustomer),
		PasswordHash: nu.PasswordHash,
	}
}

func fromDBModel(model *User) (*domain.User, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("user %q has a malformed id: %w", model.ID, err)
	}

	role := domain.Role(model.Role)
	if !role.Valid() {
		role = domain.RoleCustomer
	}
	avatar := model.AvatarURL
	if avatar == "" {
		avatar = domain.DefaultAvatarURL
	}

	return &domain.User{
		ID:           id,
		Name:         model.Name,
		Email:        model.Email,
		Phone:        model.Phone,
		Birthdate:    model.Birthdate.UTC(),
		AvatarURL:    avatar,
		Role:         role,
		PasswordHash: model.PasswordHash,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func fromDBModels(models Users) (domain.Users, error) {
	us := make(domain.Users, len(models))
	for idx, m := range models {
		u, err := fromDBModel(m)
		if err != nil {
			return nil, err
		}
		us[idx] = u
	}

	return us, nil
}
