package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

const MinPasswordLen = 8

// commonPasswords is matched case-insensitively.
var commonPasswords = []string{
	"password", "password1", "password1!", "password@1", "password@123",
	"p@ssw0rd", "p@ssword1", "qwerty@123", "qwerty123!",
	"senha", "senha123", "senha@123", "senha@1234", "mudar@123",
	"admin@123", "admin123!", "welcome@1", "welcome1!", "abc@1234",
	"12345678", "123456789", "iloveyou1!",
}

type Password struct {
	minLen   int
	denylist map[string]struct{}
}

func NewPassword() *Password {
	denylist := make(map[string]struct{}, len(commonPasswords))
	for _, p := range commonPasswords {
		denylist[p] = struct{}{}
	}

	return &Password{minLen: MinPasswordLen, denylist: denylist}
}

var _ ports.PasswordValidator = (*Password)(nil)

// ValidatePassword reports only the first rule the password breaks.
func (v *Password) ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < v.minLen {
		return v.reject(fmt.Sprintf("A senha deve ter no mínimo %d caracteres", v.minLen))
	}

	var upper, lower, digit, symbol, space bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	switch {
	case !upper:
		return v.reject("A senha deve conter ao menos uma letra maiúscula")
	case !lower:
		return v.reject("A senha deve conter ao menos uma letra minúscula")
	case !digit:
		return v.reject("A senha deve conter ao menos um número")
	case !symbol:
		return v.reject("A senha deve conter ao menos um caractere especial")
	case space:
		return v.reject("A senha não pode conter espaços")
	}

	if _, ok := v.denylist[strings.ToLower(password)]; ok {
		return v.reject("A senha é muito comum")
	}

	return nil
}

func (v *Password) reject(reason string) error {
	return apperror.InvalidParam(user.FieldPassword, reason)
}
