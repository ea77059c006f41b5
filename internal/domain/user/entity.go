package user

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAvatarURL = "https://www.gravatar.com/avatar/?d=mp"

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleCollaborator  Role = "collaborator"
	RoleCustomer      Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleCollaborator, RoleCustomer:
		return true
	}
	return false
}

type (
	ID   = uuid.UUID
	User struct {
		ID           ID
		Name         string
		Email        string
		Phone        string
		Birthdate    time.Time
		AvatarURL    string
		Role         Role
		PasswordHash string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// CreateData is the caller-supplied part of a user. Birthdate is kept
	// as the raw ISO-8601 string so a missing value can be told apart from
	// an unparseable one.
	CreateData struct {
		Name      string
		Email     string
		Phone     string
		Birthdate string
		Password  string
	}

	// NewUser is what reaches the repository: sanitized, validated and with
	// the password already hashed.
	NewUser struct {
		Name         string
		Email        string
		Phone        string
		Birthdate    time.Time
		PasswordHash string
	}

	// Mapped is a User without its password hash.
	Mapped struct {
		ID        ID
		Name      string
		Email     string
		Phone     string
		Birthdate time.Time
		AvatarURL string
		Role      Role
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

func (u User) Mapped() Mapped {
	return Mapped{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Birthdate: u.Birthdate,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (us Users) Mapped() []Mapped {
	out := make([]Mapped, 0, len(us))
	for _, u := range us {
		if u == nil {
			continue
		}
		out = append(out, u.Mapped())
	}

	return out
}
