// Package sanitizer normalizes raw user input before validation.
package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/user"
)

type UserData struct {
	xss ports.XSSSanitizer
}

func NewUserData(xss ports.XSSSanitizer) *UserData {
	return &UserData{xss: xss}
}

var _ ports.Sanitizer = (*UserData)(nil)

// Sanitize never touches the password and leaves the birthdate as given.
func (s *UserData) Sanitize(data *user.CreateData) user.CreateData {
	if data == nil {
		return user.CreateData{}
	}

	return user.CreateData{
		Name:      s.Name(data.Name),
		Email:     Email(data.Email),
		Phone:     Phone(data.Phone),
		Birthdate: data.Birthdate,
		Password:  data.Password,
	}
}

// Name strips markup, NFC-normalizes and collapses whitespace runs.
func (s *UserData) Name(name string) string {
	if s.xss != nil {
		name = s.xss.Sanitize(name)
	}
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Phone keeps digits and a single leading plus sign.
func Phone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	b.Grow(len(phone))
	if strings.HasPrefix(phone, "+") {
		b.WriteByte('+')
	}
	for _, r := range phone {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}
