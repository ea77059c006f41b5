package user

// Field labels used in user-facing error messages.
const (
	FieldName      = "nome"
	FieldEmail     = "e-mail"
	FieldPhone     = "telefone"
	FieldBirthdate = "data de nascimento"
	FieldPassword  = "senha"
)

// RequiredFields lists the CreateData fields in the order their presence is
// checked.
var RequiredFields = []string{FieldName, FieldEmail, FieldPhone, FieldBirthdate, FieldPassword}

// Value returns the CreateData value for a field label.
func (d CreateData) Value(field string) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldBirthdate:
		return d.Birthdate
	case FieldPassword:
		return d.Password
	}
	return ""
}
