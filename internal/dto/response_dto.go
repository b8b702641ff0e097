package dto

import "time"

type SetResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Type             string             `json:"type"`
	Description      string             `json:"description,omitempty"`
	IsPublished      bool               `json:"is_published"`
	CreatedBy        *string            `json:"created_by,omitempty"`
	Options          OptionsPayload     `json:"options"`
	PasscodeRequired bool               `json:"passcode_required"`
	CanEdit          bool               `json:"can_edit"`
	CanAdmin         bool               `json:"can_admin"`
	Cards            []CardResponse     `json:"cards,omitempty"`
	Questions        []QuestionResponse `json:"questions,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type CardResponse struct {
	ID          string    `json:"id"`
	SetID       string    `json:"set_id"`
	Kind        string    `json:"kind"`
	Prompt      string    `json:"prompt"`
	Answer      string    `json:"answer"`
	Explanation *string   `json:"explanation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionResponse hides CorrectIndex and Explanation when the set defers
// answer reveal to submission time.
type QuestionResponse struct {
	ID           string    `json:"id"`
	SetID        string    `json:"set_id"`
	Stem         string    `json:"stem"`
	Choices      []string  `json:"choices"`
	CorrectIndex *int      `json:"correct_index,omitempty"`
	Explanation  *string   `json:"explanation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AttemptResponse struct {
	ID          string           `json:"id"`
	SetID       string           `json:"set_id"`
	UserID      *string          `json:"user_id,omitempty"`
	IsGuest     bool             `json:"is_guest"`
	StartedAt   time.Time        `json:"started_at"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	Summary     *AttemptSummary  `json:"summary,omitempty"`
	Responses   []ResponseResult `json:"responses,omitempty"`
}

type ResponseResult struct {
	ID          string    `json:"id"`
	AttemptID   string    `json:"attempt_id"`
	QuestionID  string    `json:"question_id"`
	ChosenIndex int       `json:"chosen_index"`
	Correct     bool      `json:"correct"`
	TimeSpentMs *int      `json:"time_spent_ms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttemptSummary struct {
	Total      int `json:"total"`
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Percentage int `json:"percentage"`
}

type GenerateQuestionsResponse struct {
	Count     int                `json:"count"`
	Questions []QuestionResponse `json:"questions"`
}

type GenerateCardsResponse struct {
	Count int            `json:"count"`
	Cards []CardResponse `json:"cards"`
}

type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CodenameResponse struct {
	Codename string `json:"codename"`
}

// ErrorResponse carries a machine-readable reason code next to the message so
// clients can tell "enter a passcode" apart from "passcode expired".
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
