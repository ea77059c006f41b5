package validators

import (
	"context"
	"strings"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

// EmailUniqueness is a fast-fail check; the repository's unique index is
// what actually enforces uniqueness under concurrent creates.
type EmailUniqueness struct {
	users user.Repository
}

func NewEmailUniqueness(users user.Repository) *EmailUniqueness {
	return &EmailUniqueness{users: users}
}

var _ ports.UniquenessValidator = (*EmailUniqueness)(nil)

func (v *EmailUniqueness) ValidateUniqueEmail(ctx context.Context, email string) error {
	u, err := v.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return apperror.Wrap(err)
	}
	if u != nil {
		return apperror.DuplicateResource(user.FieldEmail)
	}

	return nil
}
