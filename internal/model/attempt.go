package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt is one quiz-taking session. It starts in progress and becomes
// terminal once SubmittedAt is set; abandoned attempts simply stay open.
type Attempt struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	SetID       string     `json:"set_id" gorm:"not null;index"`
	UserID      *string    `json:"user_id,omitempty" gorm:"index"`
	IsGuest     bool       `json:"is_guest" gorm:"default:false"`
	StartedAt   time.Time  `json:"started_at" gorm:"not null"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	Responses []Response `json:"responses,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now()
	}
	return nil
}

// Submitted reports whether the attempt has reached its terminal state.
func (a *Attempt) Submitted() bool { return a.SubmittedAt != nil }
