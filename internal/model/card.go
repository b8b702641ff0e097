package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card is a single flashcard inside a set of type "flashcards".
type Card struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	SetID       string         `json:"set_id" gorm:"not null;index"`
	Kind        string         `json:"kind" gorm:"not null;default:'term'"`
	Prompt      string         `json:"prompt" gorm:"type:text;not null"`
	Answer      string         `json:"answer" gorm:"type:text;not null"`
	Explanation *string        `json:"explanation,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Kind == "" {
		c.Kind = "term"
	}
	return nil
}
