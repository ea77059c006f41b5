package validator

import (
	"github.com/nyaruka/phonenumbers"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

const DefaultPhoneRegion = "BR"

// Phone validates numbers against libphonenumber metadata. Numbers without
// a leading plus are read as national numbers of the default region.
type Phone struct {
	region string
}

func NewPhone(region string) *Phone {
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &Phone{region: region}
}

var _ ports.PhoneValidator = (*Phone)(nil)

func (v *Phone) ValidatePhone(phone string) error {
	num, err := phonenumbers.Parse(phone, v.region)
	if err != nil {
		return apperror.InvalidParam(user.FieldPhone, "Número de telefone inválido")
	}
	if !phonenumbers.IsValidNumber(num) {
		return apperror.InvalidParam(user.FieldPhone, "Número de telefone inválido para a região")
	}

	return nil
}
