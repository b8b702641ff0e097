package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SetTypeFlashcards = "flashcards"
	SetTypeQuiz       = "quiz"
)

const (
	RevealImmediate = "immediate"
	RevealDeferred  = "deferred"
)

// SetOptions is the typed configuration record stored on a set. Only the
// enumerated keys are accepted; unknown keys are rejected at bind time
// instead of being silently dropped.
type SetOptions struct {
	Reveal         string `json:"reveal,omitempty"`
	PublicEditable bool   `json:"public_editable,omitempty"`
}

// Validate rejects values outside the recognized enumeration.
func (o SetOptions) Validate() error {
	switch o.Reveal {
	case "", RevealImmediate, RevealDeferred:
		return nil
	default:
		return fmt.Errorf("invalid reveal mode %q", o.Reveal)
	}
}

type Set struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Title       string     `json:"title" gorm:"not null"`
	Type        string     `json:"type" gorm:"not null"` // "flashcards" or "quiz"
	Description string     `json:"description,omitempty"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
	CreatedBy   *string    `json:"created_by,omitempty" gorm:"index"`
	Options     SetOptions `json:"options" gorm:"serializer:json"`

	// Passcode gate. Invariant: PasscodeHash nil implies PasscodeRequired
	// false; a nil PasscodeExpiresAt means the passcode never expires.
	PasscodeHash      *string    `json:"-"`
	PasscodeRequired  bool       `json:"passcode_required" gorm:"default:false"`
	PasscodeExpiresAt *time.Time `json:"passcode_expires_at,omitempty"`

	Cards     []Card         `json:"cards,omitempty" gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Set) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ValidType reports whether t is a recognized set type.
func ValidType(t string) bool {
	return t == SetTypeFlashcards || t == SetTypeQuiz
}
