package dto

import "time"

type CreateSetRequest struct {
	Title       string          `json:"title" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=flashcards quiz"`
	Description string          `json:"description"`
	IsPublished bool            `json:"is_published"`
	Options     *OptionsPayload `json:"options"`
}

// UpdateSetRequest carries a partial update. Pointer fields distinguish
// "absent" from "set to zero value". Title/Description need edit access;
// IsPublished, Type and Options need admin access.
type UpdateSetRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	IsPublished *bool           `json:"is_published"`
	Type        *string         `json:"type" binding:"omitempty,oneof=flashcards quiz"`
	Options     *OptionsPayload `json:"options"`
}

type OptionsPayload struct {
	Reveal         string `json:"reveal" binding:"omitempty,oneof=immediate deferred"`
	PublicEditable bool   `json:"public_editable"`
}

type CreateCardRequest struct {
	Prompt      string  `json:"prompt" binding:"required"`
	Answer      string  `json:"answer" binding:"required"`
	Explanation *string `json:"explanation"`
}

type UpdateCardRequest struct {
	Prompt      *string `json:"prompt"`
	Answer      *string `json:"answer"`
	Explanation *string `json:"explanation"`
}

type CreateQuestionRequest struct {
	Stem         string   `json:"stem" binding:"required"`
	Choices      []string `json:"choices" binding:"required"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  *string  `json:"explanation"`
}

type UpdateQuestionRequest struct {
	Stem         *string  `json:"stem"`
	Choices      []string `json:"choices"`
	CorrectIndex *int     `json:"correct_index"`
	Explanation  *string  `json:"explanation"`
}

// VerifyPasscodeRequest is bound from an HTML form post, not JSON.
type VerifyPasscodeRequest struct {
	Passcode string `form:"passcode" binding:"required"`
	Redirect string `form:"redirect"`
}

type SetPasscodeRequest struct {
	Passcode  string     `json:"passcode" binding:"required,min=1"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type StartAttemptRequest struct {
	SetID string `json:"set_id" binding:"required"`
}

type RecordResponseRequest struct {
	QuestionID  string `json:"question_id" binding:"required"`
	ChosenIndex int    `json:"chosen_index"`
	TimeSpentMs *int   `json:"time_spent_ms"`
}

type GenerateRequest struct {
	Source   string `json:"source" binding:"omitempty,oneof=prompt upload"`
	Prompt   string `json:"prompt"`
	UploadID string `json:"upload_id"`
	Count    int    `json:"count"`
	Provider string `json:"provider" binding:"omitempty,oneof=basic openai anthropic gemini zai"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
}

type CreateUploadRequest struct {
	Filename string `json:"filename" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GuestCheckinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type ReleaseCodenameRequest struct {
	Codename string `json:"codename" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
