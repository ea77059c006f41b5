package validator

import (
	"github.com/go-playground/validator/v10"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

const maxEmailLen = 254

type Email struct {
	validate *validator.Validate
}

func NewEmail() *Email {
	return &Email{validate: validator.New(validator.WithRequiredStructEnabled())}
}

var _ ports.EmailValidator = (*Email)(nil)

func (v *Email) ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return apperror.InvalidParam(user.FieldEmail, "O e-mail excede o tamanho máximo permitido")
	}
	if err := v.validate.Var(email, "required,email"); err != nil {
		return apperror.InvalidParam(user.FieldEmail, "Formato de e-mail inválido")
	}

	return nil
}
