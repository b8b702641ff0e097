package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/generator"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	minGenerateCount     = 1
	maxGenerateCount     = 20
	defaultGenerateCount = 5
)

type GenerateService interface {
	GenerateQuestions(ctx context.Context, setID string, ident access.Identity, req dto.GenerateRequest) (*dto.GenerateQuestionsResponse, error)
	GenerateCards(ctx context.Context, setID string, ident access.Identity, req dto.GenerateRequest) (*dto.GenerateCardsResponse, error)
}

type generateService struct {
	setRepo      repository.SetRepository
	cardRepo     repository.CardRepository
	questionRepo repository.QuestionRepository
	uploadRepo   repository.UploadRepository
	cfg          *config.Config
}

func NewGenerateService(
	setRepo repository.SetRepository,
	cardRepo repository.CardRepository,
	questionRepo repository.QuestionRepository,
	uploadRepo repository.UploadRepository,
	cfg *config.Config,
) GenerateService {
	return &generateService{
		setRepo:      setRepo,
		cardRepo:     cardRepo,
		questionRepo: questionRepo,
		uploadRepo:   uploadRepo,
		cfg:          cfg,
	}
}

func (s *generateService) GenerateQuestions(ctx context.Context, setID string, ident access.Identity, req dto.GenerateRequest) (*dto.GenerateQuestionsResponse, error) {
	set, gen, input, err := s.prepare(ctx, setID, ident, req)
	if err != nil {
		return nil, err
	}

	mcqs, err := gen.Questions(ctx, input, clampCount(req.Count))
	if err != nil {
		return nil, translateGeneratorError(err)
	}

	questions := make([]model.Question, 0, len(mcqs))
	for _, m := range mcqs {
		questions = append(questions, model.Question{
			SetID:        set.ID,
			Stem:         m.Stem,
			Choices:      m.Choices,
			CorrectIndex: m.CorrectIndex,
			Explanation:  m.Explanation,
		})
	}
	// Single batched insert: either every generated question lands or none.
	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Str("setId", set.ID).Msg("Failed to insert generated questions")
		return nil, err
	}

	log.Info().Str("setId", set.ID).Str("model", gen.ModelID()).Int("count", len(questions)).Msg("Generated questions")
	return &dto.GenerateQuestionsResponse{
		Count:     len(questions),
		Questions: mapQuestions(questions, false),
	}, nil
}

func (s *generateService) GenerateCards(ctx context.Context, setID string, ident access.Identity, req dto.GenerateRequest) (*dto.GenerateCardsResponse, error) {
	set, gen, input, err := s.prepare(ctx, setID, ident, req)
	if err != nil {
		return nil, err
	}

	flashcards, err := gen.Cards(ctx, input, clampCount(req.Count))
	if err != nil {
		return nil, translateGeneratorError(err)
	}

	cards := make([]model.Card, 0, len(flashcards))
	for _, f := range flashcards {
		cards = append(cards, model.Card{
			SetID:       set.ID,
			Prompt:      f.Term,
			Answer:      f.Answer,
			Explanation: f.Explanation,
		})
	}
	if err := s.cardRepo.CreateBatch(cards); err != nil {
		log.Error().Err(err).Str("setId", set.ID).Msg("Failed to insert generated cards")
		return nil, err
	}

	log.Info().Str("setId", set.ID).Str("model", gen.ModelID()).Int("count", len(cards)).Msg("Generated cards")
	return &dto.GenerateCardsResponse{
		Count: len(cards),
		Cards: mapCards(cards),
	}, nil
}

// prepare resolves the target set, checks edit access, builds the provider
// client and resolves the input text from the prompt or a stored upload.
func (s *generateService) prepare(ctx context.Context, setID string, ident access.Identity, req dto.GenerateRequest) (*model.Set, *generator.Generator, string, error) {
	set, err := s.setRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", apperr.NotFound("set", setID)
		}
		return nil, nil, "", err
	}
	if !access.CanEdit(set, ident) {
		return nil, nil, "", apperr.Forbidden(apperr.ReasonNotEditable)
	}

	input, err := s.resolveInput(req)
	if err != nil {
		return nil, nil, "", err
	}

	client, err := generator.NewClient(ctx, s.cfg, generator.Options{
		Provider: req.Provider,
		APIKey:   req.APIKey,
		Model:    req.Model,
		BaseURL:  req.BaseURL,
	})
	if err != nil {
		return nil, nil, "", translateGeneratorError(err)
	}
	return set, generator.New(client), input, nil
}

func (s *generateService) resolveInput(req dto.GenerateRequest) (string, error) {
	switch req.Source {
	case "upload":
		if req.UploadID == "" {
			return "", apperr.Validation("upload_id is required when source is upload")
		}
		upload, err := s.uploadRepo.FindByID(req.UploadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperr.NotFound("upload", req.UploadID)
			}
			return "", err
		}
		if strings.TrimSpace(upload.ParsedText) == "" {
			return "", apperr.Validation("upload %s has no text content", req.UploadID)
		}
		return upload.ParsedText, nil
	default:
		if strings.TrimSpace(req.Prompt) == "" {
			return "", apperr.Validation("prompt must not be empty")
		}
		return req.Prompt, nil
	}
}

func clampCount(count int) int {
	if count == 0 {
		return defaultGenerateCount
	}
	if count < minGenerateCount {
		return minGenerateCount
	}
	if count > maxGenerateCount {
		return maxGenerateCount
	}
	return count
}

// translateGeneratorError folds generator failures into the service error
// taxonomy: configuration and malformed-output problems are the caller's to
// fix, upstream failures pass through for a 502.
func translateGeneratorError(err error) error {
	var cfgErr *generator.ConfigError
	if errors.As(err, &cfgErr) {
		return apperr.Validation("%s", cfgErr.Error())
	}
	return err
}
