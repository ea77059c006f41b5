package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

// recorder fakes every field validator and records the order of calls.
type recorder struct {
	calls []string
	fail  map[string]error
}

func (r *recorder) hit(name string) error {
	r.calls = append(r.calls, name)
	return r.fail[name]
}

func (r *recorder) ValidateEmail(string) error { return r.hit("email") }
func (r *recorder) ValidateUniqueEmail(context.Context, string) error {
	return r.hit("unique")
}
func (r *recorder) ValidatePhone(string) error     { return r.hit("phone") }
func (r *recorder) ValidateBirthdate(string) error { return r.hit("birthdate") }
func (r *recorder) ValidatePassword(string) error  { return r.hit("password") }

func newRecorded(fail map[string]error) (*DataValidator, *recorder) {
	r := &recorder{fail: fail}
	return NewDataValidator(r, r, r, r, r), r
}

func validData() user.CreateData {
	return user.CreateData{
		Name:      "John Doe",
		Email:     "john@ex.com",
		Phone:     "11987654321",
		Birthdate: "1990-01-01",
		Password:  "StrongP@ss1",
	}
}

func TestDataValidator_RunsEveryCheckInOrder(t *testing.T) {
	v, r := newRecorded(nil)

	require.NoError(t, v.Validate(context.Background(), validData()))
	assert.Equal(t, []string{"email", "unique", "phone", "birthdate", "password"}, r.calls)
}

func TestDataValidator_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *user.CreateData)
		wantParam string
	}{
		{"name", func(d *user.CreateData) { d.Name = "" }, "nome"},
		{"email", func(d *user.CreateData) { d.Email = "" }, "e-mail"},
		{"phone blank", func(d *user.CreateData) { d.Phone = "   " }, "telefone"},
		{"birthdate", func(d *user.CreateData) { d.Birthdate = "" }, "data de nascimento"},
		{"password", func(d *user.CreateData) { d.Password = "" }, "senha"},
		{"first of two wins", func(d *user.CreateData) { d.Password = ""; d.Phone = "" }, "telefone"},
		{"everything missing", func(d *user.CreateData) { *d = user.CreateData{} }, "nome"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			v, r := newRecorded(nil)
			d := validData()
			tt.mutate(&d)

			err := v.Validate(context.Background(), d)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindMissingParam, appErr.Kind)
			assert.Equal(t, tt.wantParam, appErr.Param)
			assert.Empty(t, r.calls, "no field validator runs before presence passes")
		})
	}
}

func TestDataValidator_BlankPasswordIsPresent(t *testing.T) {
	v, r := newRecorded(nil)
	d := validData()
	d.Password = "         "

	require.NoError(t, v.Validate(context.Background(), d))
	assert.Equal(t, []string{"email", "unique", "phone", "birthdate", "password"}, r.calls,
		"a blank password reaches the password policy")
}

func TestDataValidator_StopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		failAt    string
		wantCalls []string
	}{
		{"email", []string{"email"}},
		{"unique", []string{"email", "unique"}},
		{"phone", []string{"email", "unique", "phone"}},
		{"birthdate", []string{"email", "unique", "phone", "birthdate"}},
		{"password", []string{"email", "unique", "phone", "birthdate", "password"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.failAt, func(t *testing.T) {
			want := apperror.InvalidParam(tt.failAt, "bad")
			v, r := newRecorded(map[string]error{tt.failAt: want})

			err := v.Validate(context.Background(), validData())
			assert.Same(t, want, err, "typed errors pass through unchanged")
			assert.Equal(t, tt.wantCalls, r.calls)
		})
	}
}

func TestDataValidator_WrapsUntypedErrors(t *testing.T) {
	cause := errors.New("connection reset")
	v, _ := newRecorded(map[string]error{"unique": cause})

	err := v.Validate(context.Background(), validData())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindServer, appErr.Kind)
	assert.Equal(t, "Connection reset", appErr.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, appErr.Stack())
}
