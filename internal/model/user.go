package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an email-identified principal. PasswordHash is nil for accounts
// created through OAuth; those cannot log in or reset a password here.
type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Email        string  `json:"email" gorm:"not null;uniqueIndex"`
	DisplayName  *string `json:"display_name,omitempty"`
	PasswordHash *string `json:"-"`

	PasswordResetToken   *string    `json:"-" gorm:"index"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
