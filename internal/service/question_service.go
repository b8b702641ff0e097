package service

import (
	"errors"
	"strings"
	"time"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	minChoices = 2
	maxChoices = 5
)

type QuestionService interface {
	ListQuestions(setID string, ident access.Identity, grantToken string) ([]dto.QuestionResponse, error)
	CreateQuestion(setID string, ident access.Identity, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(id string, ident access.Identity, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id string, ident access.Identity) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	setRepo      repository.SetRepository
	cfg          *config.Config
}

func NewQuestionService(questionRepo repository.QuestionRepository, setRepo repository.SetRepository, cfg *config.Config) QuestionService {
	return &questionService{questionRepo: questionRepo, setRepo: setRepo, cfg: cfg}
}

func (s *questionService) ListQuestions(setID string, ident access.Identity, grantToken string) ([]dto.QuestionResponse, error) {
	set, err := s.fetchSet(setID)
	if err != nil {
		return nil, err
	}
	decision := access.CanView(set, ident, grantToken, s.cfg.Auth.GrantSecret, time.Now())
	if !decision.Allowed {
		return nil, apperr.Forbidden(apperr.ForbiddenReason(decision.Reason))
	}
	questions, err := s.questionRepo.FindBySetID(setID)
	if err != nil {
		return nil, err
	}
	return mapQuestions(questions, hideAnswers(set, access.CanEdit(set, ident))), nil
}

func (s *questionService) CreateQuestion(setID string, ident access.Identity, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	set, err := s.fetchSet(setID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(set, ident) {
		return nil, apperr.Forbidden(apperr.ReasonNotEditable)
	}
	if err := validateQuestion(req.Stem, req.Choices, req.CorrectIndex); err != nil {
		return nil, err
	}
	question := model.Question{
		SetID:        setID,
		Stem:         req.Stem,
		Choices:      req.Choices,
		CorrectIndex: req.CorrectIndex,
		Explanation:  req.Explanation,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Str("setId", setID).Msg("Failed to create question")
		return nil, err
	}
	resp := mapQuestion(&question, false)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(id string, ident access.Identity, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question", id)
		}
		return nil, err
	}
	set, err := s.fetchSet(question.SetID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(set, ident) {
		return nil, apperr.Forbidden(apperr.ReasonNotEditable)
	}
	if req.Stem != nil {
		question.Stem = *req.Stem
	}
	if req.Choices != nil {
		question.Choices = req.Choices
	}
	if req.CorrectIndex != nil {
		question.CorrectIndex = *req.CorrectIndex
	}
	if req.Explanation != nil {
		question.Explanation = req.Explanation
	}
	if err := validateQuestion(question.Stem, question.Choices, question.CorrectIndex); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	resp := mapQuestion(question, false)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(id string, ident access.Identity) error {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("question", id)
		}
		return err
	}
	set, err := s.fetchSet(question.SetID)
	if err != nil {
		return err
	}
	if !access.CanEdit(set, ident) {
		return apperr.Forbidden(apperr.ReasonNotEditable)
	}
	return s.questionRepo.Delete(id)
}

func (s *questionService) fetchSet(setID string) (*model.Set, error) {
	set, err := s.setRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("set", setID)
		}
		return nil, err
	}
	return set, nil
}

func validateQuestion(stem string, choices []string, correctIndex int) error {
	if strings.TrimSpace(stem) == "" {
		return apperr.Validation("stem must not be empty")
	}
	if len(choices) < minChoices || len(choices) > maxChoices {
		return apperr.Validation("choices must have between %d and %d entries", minChoices, maxChoices)
	}
	for i, c := range choices {
		if strings.TrimSpace(c) == "" {
			return apperr.Validation("choice %d must not be empty", i)
		}
	}
	if correctIndex < 0 || correctIndex >= len(choices) {
		return apperr.Validation("correct_index %d is out of range", correctIndex)
	}
	return nil
}
