package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response records one answer to one question within an attempt. Correct is
// computed at insert time against the question's correct index and never
// recomputed afterwards. Rows are immutable once written, and the composite
// unique index keeps a second answer for the same question out of the
// summary arithmetic.
type Response struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	AttemptID   string    `json:"attempt_id" gorm:"not null;uniqueIndex:idx_responses_attempt_question"`
	QuestionID  string    `json:"question_id" gorm:"not null;uniqueIndex:idx_responses_attempt_question"`
	ChosenIndex int       `json:"chosen_index" gorm:"not null"`
	Correct     bool      `json:"correct" gorm:"not null"`
	TimeSpentMs *int      `json:"time_spent_ms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
