package service

import (
	"errors"
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

type CardService interface {
	ListCards(setID string, ident access.Identity, grantToken string) ([]dto.CardResponse, error)
	CreateCard(setID string, ident access.Identity, req dto.CreateCardRequest) (*dto.CardResponse, error)
	UpdateCard(id string, ident access.Identity, req dto.UpdateCardRequest) (*dto.CardResponse, error)
	DeleteCard(id string, ident access.Identity) error
}

type cardService struct {
	cardRepo repository.CardRepository
	setRepo  repository.SetRepository
	cfg      *config.Config
}

func NewCardService(cardRepo repository.CardRepository, setRepo repository.SetRepository, cfg *config.Config) CardService {
	return &cardService{cardRepo: cardRepo, setRepo: setRepo, cfg: cfg}
}

func (s *cardService) ListCards(setID string, ident access.Identity, grantToken string) ([]dto.CardResponse, error) {
	set, err := s.fetchSet(setID)
	if err != nil {
		return nil, err
	}
	decision := access.CanView(set, ident, grantToken, s.cfg.Auth.GrantSecret, time.Now())
	if !decision.Allowed {
		return nil, apperr.Forbidden(apperr.ForbiddenReason(decision.Reason))
	}
	cards, err := s.cardRepo.FindBySetID(setID)
	if err != nil {
		return nil, err
	}
	return mapCards(cards), nil
}

func (s *cardService) CreateCard(setID string, ident access.Identity, req dto.CreateCardRequest) (*dto.CardResponse, error) {
	set, err := s.fetchSet(setID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(set, ident) {
		return nil, apperr.Forbidden(apperr.ReasonNotEditable)
	}
	card := model.Card{
		SetID:       setID,
		Prompt:      req.Prompt,
		Answer:      req.Answer,
		Explanation: req.Explanation,
	}
	if err := s.cardRepo.Create(&card); err != nil {
		log.Error().Err(err).Str("setId", setID).Msg("Failed to create card")
		return nil, err
	}
	var resp dto.CardResponse
	copier.Copy(&resp, &card)
	return &resp, nil
}

func (s *cardService) UpdateCard(id string, ident access.Identity, req dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, err := s.cardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("card", id)
		}
		return nil, err
	}
	set, err := s.fetchSet(card.SetID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(set, ident) {
		return nil, apperr.Forbidden(apperr.ReasonNotEditable)
	}
	if req.Prompt != nil {
		card.Prompt = *req.Prompt
	}
	if req.Answer != nil {
		card.Answer = *req.Answer
	}
	if req.Explanation != nil {
		card.Explanation = req.Explanation
	}
	if err := s.cardRepo.Update(card); err != nil {
		return nil, err
	}
	var resp dto.CardResponse
	copier.Copy(&resp, card)
	return &resp, nil
}

func (s *cardService) DeleteCard(id string, ident access.Identity) error {
	card, err := s.cardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("card", id)
		}
		return err
	}
	set, err := s.fetchSet(card.SetID)
	if err != nil {
		return err
	}
	if !access.CanEdit(set, ident) {
		return apperr.Forbidden(apperr.ReasonNotEditable)
	}
	return s.cardRepo.Delete(id)
}

func (s *cardService) fetchSet(setID string) (*model.Set, error) {
	set, err := s.setRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("set", setID)
		}
		return nil, err
	}
	return set, nil
}
