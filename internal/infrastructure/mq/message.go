package mq

import (
	"time"

	"github.com/google/uuid"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/user"
)

type (
	// Message is the wire form of a user event.
	Message struct {
		ID      uuid.UUID   `json:"event_id"`
		TS      time.Time   `json:"time_stamp"`
		Action  string      `json:"event_action"`
		UserID  string      `json:"user_id"`
		Payload UserPayload `json:"user_payload"`
	}
	UserPayload struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		Birthdate string    `json:"birthdate"`
		AvatarURL string    `json:"avatarUrl"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
)

func ToMessage(e ports.UserEvent) Message {
	return Message{
		ID:      e.ID,
		TS:      e.TS,
		Action:  e.Action,
		UserID:  e.User.ID.String(),
		Payload: toPayload(e.User),
	}
}

func toPayload(u user.Mapped) UserPayload {
	return UserPayload{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Birthdate: u.Birthdate.Format(user.DateLayout),
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
