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

type SetService interface {
	CreateSet(ident access.Identity, req dto.CreateSetRequest) (*dto.SetResponse, error)
	ListSets(ident access.Identity) ([]dto.SetResponse, error)
	GetSet(id string, ident access.Identity, grantToken string) (*dto.SetResponse, error)
	UpdateSet(id string, ident access.Identity, req dto.UpdateSetRequest) (*dto.SetResponse, error)
	DeleteSet(id string, ident access.Identity) error
}

type setService struct {
	setRepo repository.SetRepository
	cfg     *config.Config
}

func NewSetService(setRepo repository.SetRepository, cfg *config.Config) SetService {
	return &setService{setRepo: setRepo, cfg: cfg}
}

func (s *setService) CreateSet(ident access.Identity, req dto.CreateSetRequest) (*dto.SetResponse, error) {
	set := model.Set{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	if req.Options != nil {
		set.Options = model.SetOptions{Reveal: req.Options.Reveal, PublicEditable: req.Options.PublicEditable}
	}
	if err := set.Options.Validate(); err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}
	if ident.UserID != "" {
		uid := ident.UserID
		set.CreatedBy = &uid
	}
	if err := s.setRepo.Create(&set); err != nil {
		log.Error().Err(err).Msg("Failed to create set")
		return nil, err
	}
	return s.toResponse(&set, ident), nil
}

func (s *setService) ListSets(ident access.Identity) ([]dto.SetResponse, error) {
	var (
		sets []model.Set
		err  error
	)
	if ident.UserID != "" {
		sets, err = s.setRepo.FindVisibleTo(ident.UserID)
	} else {
		sets, err = s.setRepo.FindPublished()
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SetResponse, 0, len(sets))
	for i := range sets {
		resp = append(resp, *s.toResponse(&sets[i], ident))
	}
	return resp, nil
}

// GetSet returns the set with its content, subject to the view decision.
// Unpublished sets are fetchable by direct ID; is_published only keeps them
// out of anonymous listings.
func (s *setService) GetSet(id string, ident access.Identity, grantToken string) (*dto.SetResponse, error) {
	set, err := s.setRepo.FindByIDWithContent(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("set", id)
		}
		return nil, err
	}

	decision := access.CanView(set, ident, grantToken, s.cfg.Auth.GrantSecret, time.Now())
	if !decision.Allowed {
		return nil, apperr.Forbidden(apperr.ForbiddenReason(decision.Reason))
	}

	resp := s.toResponse(set, ident)
	resp.Cards = mapCards(set.Cards)
	resp.Questions = mapQuestions(set.Questions, hideAnswers(set, resp.CanEdit))
	return resp, nil
}

func (s *setService) UpdateSet(id string, ident access.Identity, req dto.UpdateSetRequest) (*dto.SetResponse, error) {
	set, err := s.setRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("set", id)
		}
		return nil, err
	}

	wantsAdmin := req.IsPublished != nil || req.Type != nil || req.Options != nil
	wantsEdit := req.Title != nil || req.Description != nil

	if wantsAdmin && !access.CanAdmin(set, ident, s.cfg.Auth.AllowOwnerlessAdmin) {
		return nil, apperr.Forbidden(apperr.ReasonNotOwner)
	}
	if wantsEdit && !access.CanEdit(set, ident) {
		return nil, apperr.Forbidden(apperr.ReasonNotEditable)
	}

	if req.Title != nil {
		set.Title = *req.Title
	}
	if req.Description != nil {
		set.Description = *req.Description
	}
	if req.IsPublished != nil {
		set.IsPublished = *req.IsPublished
	}
	if req.Type != nil {
		if !model.ValidType(*req.Type) {
			return nil, apperr.Validation("invalid set type %q", *req.Type)
		}
		set.Type = *req.Type
	}
	if req.Options != nil {
		opts := model.SetOptions{Reveal: req.Options.Reveal, PublicEditable: req.Options.PublicEditable}
		if err := opts.Validate(); err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		set.Options = opts
	}

	if err := s.setRepo.Update(set); err != nil {
		log.Error().Err(err).Str("setId", id).Msg("Failed to update set")
		return nil, err
	}
	return s.toResponse(set, ident), nil
}

func (s *setService) DeleteSet(id string, ident access.Identity) error {
	set, err := s.setRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("set", id)
		}
		return err
	}
	if !access.CanAdmin(set, ident, s.cfg.Auth.AllowOwnerlessAdmin) {
		return apperr.Forbidden(apperr.ReasonNotOwner)
	}
	return s.setRepo.Delete(id)
}

func (s *setService) toResponse(set *model.Set, ident access.Identity) *dto.SetResponse {
	var resp dto.SetResponse
	copier.Copy(&resp, set)
	resp.Options = dto.OptionsPayload{Reveal: set.Options.Reveal, PublicEditable: set.Options.PublicEditable}
	resp.CanEdit = access.CanEdit(set, ident)
	resp.CanAdmin = access.CanAdmin(set, ident, s.cfg.Auth.AllowOwnerlessAdmin)
	resp.Cards = nil
	resp.Questions = nil
	return &resp
}

// hideAnswers reports whether correct answers should be stripped from the
// question payload: deferred reveal hides them from everyone who cannot edit.
func hideAnswers(set *model.Set, canEdit bool) bool {
	return set.Options.Reveal == model.RevealDeferred && !canEdit
}

func mapCards(cards []model.Card) []dto.CardResponse {
	resp := make([]dto.CardResponse, 0, len(cards))
	for i := range cards {
		var c dto.CardResponse
		copier.Copy(&c, &cards[i])
		resp = append(resp, c)
	}
	return resp
}

func mapQuestions(questions []model.Question, hide bool) []dto.QuestionResponse {
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, mapQuestion(&questions[i], hide))
	}
	return resp
}

func mapQuestion(q *model.Question, hide bool) dto.QuestionResponse {
	out := dto.QuestionResponse{
		ID:        q.ID,
		SetID:     q.SetID,
		Stem:      q.Stem,
		Choices:   q.Choices,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if !hide {
		idx := q.CorrectIndex
		out.CorrectIndex = &idx
		out.Explanation = q.Explanation
	}
	return out
}
