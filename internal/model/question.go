package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is a multiple-choice question inside a set of type "quiz".
// Choices holds 2 to 5 non-empty entries; CorrectIndex points into it.
type Question struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	SetID        string         `json:"set_id" gorm:"not null;index"`
	Stem         string         `json:"stem" gorm:"type:text;not null"`
	Choices      []string       `json:"choices" gorm:"serializer:json;not null"`
	CorrectIndex int            `json:"correct_index" gorm:"not null"`
	Explanation  *string        `json:"explanation,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
