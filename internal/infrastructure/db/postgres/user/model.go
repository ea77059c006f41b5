package user

import (
	"time"
)

type (
	User struct {
		ID           string    `gorm:"primaryKey;size:36"`
		Name         string    `gorm:"size:120;not null"`
		Email        string    `gorm:"size:254;not null;uniqueIndex"`
		Phone        string    `gorm:"size:20;not null"`
		Birthdate    time.Time `gorm:"not null"`
		AvatarURL    string    `gorm:"size:512;not null"`
		Role         string    `gorm:"size:16;not null;default:customer"`
		PasswordHash string    `gorm:"size:255;not null"`

		CreatedAt time.Time `gorm:"autoCreateTime"`
		UpdatedAt time.Time `gorm:"autoUpdateTime"`
	}
	Users []*User
)

func (User) TableName() string { return "users" }
