package validators

import (
	"context"
	"strings"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

// DataValidator runs the create checks in a fixed order and stops at the
// first failure: presence, e-mail format, e-mail uniqueness, phone,
// birthdate, password.
type DataValidator struct {
	email     ports.EmailValidator
	unique    ports.UniquenessValidator
	phone     ports.PhoneValidator
	birthdate ports.BirthdateValidator
	password  ports.PasswordValidator
}

func NewDataValidator(
	email ports.EmailValidator,
	unique ports.UniquenessValidator,
	phone ports.PhoneValidator,
	birthdate ports.BirthdateValidator,
	password ports.PasswordValidator,
) *DataValidator {
	return &DataValidator{
		email:     email,
		unique:    unique,
		phone:     phone,
		birthdate: birthdate,
		password:  password,
	}
}

var _ ports.DataValidator = (*DataValidator)(nil)

func (v *DataValidator) Validate(ctx context.Context, data user.CreateData) error {
	if err := requireFields(data); err != nil {
		return err
	}

	steps := []func() error{
		func() error { return v.email.ValidateEmail(data.Email) },
		func() error { return v.unique.ValidateUniqueEmail(ctx, data.Email) },
		func() error { return v.phone.ValidatePhone(data.Phone) },
		func() error { return v.birthdate.ValidateBirthdate(data.Birthdate) },
		func() error { return v.password.ValidatePassword(data.Password) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return apperror.Wrap(err)
		}
	}

	return nil
}

func requireFields(data user.CreateData) error {
	for _, field := range user.RequiredFields {
		v := data.Value(field)
		// passwords are never sanitized; blanks fall through to the policy
		if field != user.FieldPassword {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			return apperror.MissingParam(field)
		}
	}
	return nil
}
