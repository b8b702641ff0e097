package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	passwordHashCost = 10
	resetTokenTTL    = time.Hour
	resetTokenBytes  = 32
)

type AuthService interface {
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	// GuestCheckin finds or creates the user for the email. The returned
	// user is remembered through the guest cookie set by the controller.
	GuestCheckin(req dto.GuestCheckinRequest) (*dto.UserResponse, error)
	// ClaimCodename loans a unique display name to an anonymous guest;
	// ReleaseCodename returns it to the pool.
	ClaimCodename() (string, error)
	ReleaseCodename(name string) error
	ForgotPassword(req dto.ForgotPasswordRequest) error
	ResetPassword(req dto.ResetPasswordRequest) error
}

type authService struct {
	userRepo     repository.UserRepository
	codenameRepo repository.CodenameRepository
	resetStore   auth.ResetTokenStore
	cfg          *config.Config
}

func NewAuthService(userRepo repository.UserRepository, codenameRepo repository.CodenameRepository, resetStore auth.ResetTokenStore, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, codenameRepo: codenameRepo, resetStore: resetStore, cfg: cfg}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden(apperr.ReasonInvalidGrant)
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		// Account exists but has never set a password (guest or OAuth
		// provisioned). Same response as a wrong password.
		return nil, apperr.Forbidden(apperr.ReasonInvalidGrant)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Forbidden(apperr.ReasonInvalidGrant)
	}
	token, err := auth.IssueSessionToken(s.cfg.Auth.JWTSecret, user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign session token")
		return nil, err
	}
	var userResp dto.UserResponse
	copier.Copy(&userResp, user)
	return &dto.TokenResponse{Token: token, User: userResp}, nil
}

func (s *authService) GuestCheckin(req dto.GuestCheckinRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &model.User{Email: req.Email}
		if req.Name != "" {
			name := req.Name
			user.DisplayName = &name
		}
		if err := s.userRepo.Create(user); err != nil {
			log.Error().Err(err).Msg("Failed to create guest user")
			return nil, err
		}
	} else if user.PasswordHash != nil {
		// The email belongs to a registered account; a guest can only
		// claim it by proving the password.
		if req.Password == "" {
			return nil, apperr.Validation("this email has an account, password required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
			return nil, apperr.Forbidden(apperr.ReasonInvalidGrant)
		}
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

var (
	codenameAdjectives = []string{
		"amber", "brisk", "clever", "dapper", "eager", "fabled", "gentle",
		"hidden", "ivory", "jolly", "keen", "lucid", "mellow", "nimble",
		"plucky", "quiet", "rustic", "silver", "tidy", "vivid", "witty",
	}
	codenameAnimals = []string{
		"badger", "crane", "dolphin", "falcon", "gecko", "heron", "ibex",
		"jackal", "koala", "lemur", "marten", "ocelot", "puffin", "quokka",
		"raven", "stoat", "tapir", "vole", "wombat", "yak",
	}
)

const codenameClaimAttempts = 6

func (s *authService) ClaimCodename() (string, error) {
	for attempt := 0; attempt < codenameClaimAttempts; attempt++ {
		name := fmt.Sprintf("%s-%s", pickWord(codenameAdjectives), pickWord(codenameAnimals))
		if attempt > 0 {
			// The bare pair collided; widen the pool with a numeric tag.
			name = fmt.Sprintf("%s-%02d", name, randBelow(100))
		}
		err := s.codenameRepo.Create(&model.Codename{Name: name})
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Error().Err(err).Msg("Failed to claim codename")
			return "", err
		}
	}
	return "", errors.New("codename pool exhausted")
}

func (s *authService) ReleaseCodename(name string) error {
	if name == "" {
		return apperr.Validation("codename is required")
	}
	return s.codenameRepo.DeleteByName(name)
}

func pickWord(words []string) string {
	return words[randBelow(len(words))]
}

func randBelow(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// ForgotPassword issues a reset token. It reports success even for unknown
// emails so callers cannot probe which addresses have accounts.
func (s *authService) ForgotPassword(req dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)
	if err := s.resetStore.Put(user.Email, token, time.Now().Add(resetTokenTTL)); err != nil {
		log.Error().Err(err).Msg("Failed to store reset token")
		return err
	}
	// Mail delivery is out of process; the token surfaces in the log for
	// operators until a mailer is attached.
	log.Info().Str("email", user.Email).Str("token", token).Msg("Password reset token issued")
	return nil
}

func (s *authService) ResetPassword(req dto.ResetPasswordRequest) error {
	email, ok, err := s.resetStore.Consume(req.Token)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("invalid or expired reset token")
	}
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user", email)
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), passwordHashCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)
	user.PasswordHash = &hashStr
	return s.userRepo.Update(user)
}
