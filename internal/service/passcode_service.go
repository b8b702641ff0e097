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
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passcodeHashCost = 10

type PasscodeService interface {
	// Verify checks the submitted passcode and mints a grant token on
	// success. The token must then be delivered as the grant cookie.
	Verify(setID, passcode string) (token string, err error)
	SetPasscode(setID string, ident access.Identity, req dto.SetPasscodeRequest) error
	ClearPasscode(setID string, ident access.Identity) error
}

type passcodeService struct {
	setRepo repository.SetRepository
	cfg     *config.Config
}

func NewPasscodeService(setRepo repository.SetRepository, cfg *config.Config) PasscodeService {
	return &passcodeService{setRepo: setRepo, cfg: cfg}
}

func (s *passcodeService) Verify(setID, passcode string) (string, error) {
	set, err := s.fetchSet(setID)
	if err != nil {
		return "", err
	}
	if !set.PasscodeRequired || set.PasscodeHash == nil {
		return "", apperr.Validation("set has no passcode")
	}
	// A lapsed configuration refuses even the right passcode, so check the
	// expiry before touching the hash.
	if set.PasscodeExpiresAt != nil && set.PasscodeExpiresAt.Before(time.Now()) {
		return "", apperr.Forbidden(apperr.ReasonPasscodeExpired)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*set.PasscodeHash), []byte(passcode)); err != nil {
		return "", apperr.Forbidden(apperr.ReasonInvalidGrant)
	}
	token, err := access.MintGrant(s.cfg.Auth.GrantSecret, set.ID, set.PasscodeExpiresAt)
	if err != nil {
		log.Error().Err(err).Str("setId", setID).Msg("Failed to mint grant token")
		return "", err
	}
	return token, nil
}

func (s *passcodeService) SetPasscode(setID string, ident access.Identity, req dto.SetPasscodeRequest) error {
	set, err := s.fetchSet(setID)
	if err != nil {
		return err
	}
	if !access.CanAdmin(set, ident, s.cfg.Auth.AllowOwnerlessAdmin) {
		return apperr.Forbidden(apperr.ReasonNotOwner)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Passcode), passcodeHashCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)
	set.PasscodeHash = &hashStr
	set.PasscodeRequired = true
	set.PasscodeExpiresAt = req.ExpiresAt
	return s.setRepo.Update(set)
}

func (s *passcodeService) ClearPasscode(setID string, ident access.Identity) error {
	set, err := s.fetchSet(setID)
	if err != nil {
		return err
	}
	if !access.CanAdmin(set, ident, s.cfg.Auth.AllowOwnerlessAdmin) {
		return apperr.Forbidden(apperr.ReasonNotOwner)
	}
	// Clearing the hash must also drop the required flag: a required gate
	// with no hash would lock everyone out.
	set.PasscodeHash = nil
	set.PasscodeRequired = false
	set.PasscodeExpiresAt = nil
	return s.setRepo.Update(set)
}

func (s *passcodeService) fetchSet(setID string) (*model.Set, error) {
	set, err := s.setRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("set", setID)
		}
		return nil, err
	}
	return set, nil
}
