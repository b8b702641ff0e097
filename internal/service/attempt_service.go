package service

import (
	"errors"
	"math"
	"time"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AttemptService interface {
	StartAttempt(ident access.Identity, grantToken string, req dto.StartAttemptRequest) (*dto.AttemptResponse, error)
	RecordResponse(attemptID string, req dto.RecordResponseRequest) (*dto.ResponseResult, error)
	SubmitAttempt(attemptID string) (*dto.AttemptResponse, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	responseRepo repository.ResponseRepository
	questionRepo repository.QuestionRepository
	setRepo      repository.SetRepository
	cfg          *config.Config
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	responseRepo repository.ResponseRepository,
	questionRepo repository.QuestionRepository,
	setRepo repository.SetRepository,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		responseRepo: responseRepo,
		questionRepo: questionRepo,
		setRepo:      setRepo,
		cfg:          cfg,
	}
}

// StartAttempt opens a session against a set, applying the same view rules
// as reading the set itself. Guests start attempts with is_guest set.
func (s *attemptService) StartAttempt(ident access.Identity, grantToken string, req dto.StartAttemptRequest) (*dto.AttemptResponse, error) {
	set, err := s.setRepo.FindByID(req.SetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("set", req.SetID)
		}
		return nil, err
	}
	decision := access.CanView(set, ident, grantToken, s.cfg.Auth.GrantSecret, time.Now())
	if !decision.Allowed {
		return nil, apperr.Forbidden(apperr.ForbiddenReason(decision.Reason))
	}

	attempt := model.Attempt{SetID: set.ID, IsGuest: ident.IsGuest}
	if ident.UserID != "" {
		uid := ident.UserID
		attempt.UserID = &uid
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("setId", set.ID).Msg("Failed to create attempt")
		return nil, err
	}
	var resp dto.AttemptResponse
	copier.Copy(&resp, &attempt)
	return &resp, nil
}

// RecordResponse scores the answer against the question's current correct
// index and returns the result synchronously for immediate feedback.
func (s *attemptService) RecordResponse(attemptID string, req dto.RecordResponseRequest) (*dto.ResponseResult, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt", attemptID)
		}
		return nil, err
	}
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question", req.QuestionID)
		}
		return nil, err
	}
	if question.SetID != attempt.SetID {
		return nil, apperr.Validation("question %s does not belong to the attempt's set", req.QuestionID)
	}

	response := model.Response{
		AttemptID:   attempt.ID,
		QuestionID:  question.ID,
		ChosenIndex: req.ChosenIndex,
		Correct:     req.ChosenIndex == question.CorrectIndex,
		TimeSpentMs: req.TimeSpentMs,
	}
	if err := s.responseRepo.Create(&response); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("question %s already answered in this attempt", req.QuestionID)
		}
		log.Error().Err(err).Str("attemptId", attemptID).Msg("Failed to record response")
		return nil, err
	}
	var resp dto.ResponseResult
	copier.Copy(&resp, &response)
	return &resp, nil
}

// SubmitAttempt stamps the submission time and aggregates the responses.
// Re-submitting just overwrites the timestamp and recomputes.
func (s *attemptService) SubmitAttempt(attemptID string) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithResponses(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt", attemptID)
		}
		return nil, err
	}

	now := time.Now()
	attempt.SubmittedAt = &now
	if err := s.attemptRepo.Update(attempt); err != nil {
		log.Error().Err(err).Str("attemptId", attemptID).Msg("Failed to submit attempt")
		return nil, err
	}

	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	summary := Summarize(attempt.Responses)
	resp.Summary = &summary
	return &resp, nil
}

// Summarize aggregates scored responses into the attempt summary. An empty
// attempt yields all zeros rather than a division error.
func Summarize(responses []model.Response) dto.AttemptSummary {
	summary := dto.AttemptSummary{Total: len(responses)}
	for _, r := range responses {
		if r.Correct {
			summary.Correct++
		}
	}
	summary.Incorrect = summary.Total - summary.Correct
	if summary.Total > 0 {
		summary.Percentage = int(math.Round(100 * float64(summary.Correct) / float64(summary.Total)))
	}
	return summary
}
