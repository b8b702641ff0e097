package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upload stores the extracted text of an uploaded file, later used as input
// for content generation.
type Upload struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Filename   string    `json:"filename"`
	ParsedText string    `json:"parsed_text" gorm:"type:text;not null"`
	CreatedBy  *string   `json:"created_by,omitempty" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
