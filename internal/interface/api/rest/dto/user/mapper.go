package user

import (
	"user-registry-api/internal/domain/user"
)

func ToResponseUser(m user.Mapped) User {
	return User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Birthdate: m.Birthdate.Format(user.DateLayout),
		AvatarURL: m.AvatarURL,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToResponseUsers(ms []user.Mapped) Users {
	us := make(Users, len(ms))
	for idx, m := range ms {
		us[idx] = ToResponseUser(m)
	}

	return us
}

func ToCreateData(r Request) *user.CreateData {
	return &user.CreateData{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Birthdate: r.Birthdate,
		Password:  r.Password,
	}
}
