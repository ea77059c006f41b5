package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Request is the POST /api/users body. Every field is a string so an
	// absent value reaches the service as empty and is reported as missing.
	Request struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Birthdate string `json:"birthdate"`
		Password  string `json:"password"`
	}

	User struct {
		ID        uuid.UUID `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		Birthdate string    `json:"birthdate"`
		AvatarURL string    `json:"avatarUrl"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	Users []User
)
