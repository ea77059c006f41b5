package validator

import (
	"fmt"
	"time"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

const (
	DefaultMinAge = 18
	DefaultMaxAge = 70
)

// Birthdate accepts ages in [minAge, maxAge] whole years.
type Birthdate struct {
	minAge int
	maxAge int
	now    func() time.Time
}

type BirthdateOption func(*Birthdate)

func WithAgeRange(minAge, maxAge int) BirthdateOption {
	return func(b *Birthdate) {
		if minAge > 0 {
			b.minAge = minAge
		}
		if maxAge > 0 {
			b.maxAge = maxAge
		}
	}
}

func WithClock(now func() time.Time) BirthdateOption {
	return func(b *Birthdate) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBirthdate(opts ...BirthdateOption) *Birthdate {
	b := &Birthdate{
		minAge: DefaultMinAge,
		maxAge: DefaultMaxAge,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.BirthdateValidator = (*Birthdate)(nil)

func (v *Birthdate) ValidateBirthdate(birthdate string) error {
	d, err := user.ParseBirthdate(birthdate)
	if err != nil {
		return apperror.InvalidParam(user.FieldBirthdate, "Data inválida")
	}

	now := v.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !d.Before(today) {
		return apperror.InvalidParam(user.FieldBirthdate, "A data não pode estar no futuro")
	}

	age := user.AgeAt(d, now)
	if age < v.minAge {
		return apperror.InvalidParam(user.FieldBirthdate, fmt.Sprintf("A idade mínima é %d anos", v.minAge))
	}
	if age > v.maxAge {
		return apperror.InvalidParam(user.FieldBirthdate, fmt.Sprintf("A idade máxima é %d anos", v.maxAge))
	}

	return nil
}
