package ports

import (
	"context"

	"user-registry-api/internal/domain/user"
)

// Field validators return a typed apperror on rejection.
type (
	EmailValidator interface {
		ValidateEmail(email string) error
	}
	PhoneValidator interface {
		ValidatePhone(phone string) error
	}
	PasswordValidator interface {
		ValidatePassword(password string) error
	}
	BirthdateValidator interface {
		ValidateBirthdate(birthdate string) error
	}
	UniquenessValidator interface {
		ValidateUniqueEmail(ctx context.Context, email string) error
	}
)

// DataValidator checks a whole CreateData and fails on the first problem.
type DataValidator interface {
	Validate(ctx context.Context, data user.CreateData) error
}
