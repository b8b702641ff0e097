package service

import (
	"testing"

	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthFixture(t *testing.T) (AuthService, repository.UserRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAuthService(userRepo, repository.NewCodenameRepository(db), auth.NewDBResetTokenStore(userRepo), newTestConfig())
	return svc, userRepo, db
}

func seedUser(t *testing.T, userRepo repository.UserRepository, email, password string) *model.User {
	t.Helper()
	user := &model.User{Email: email}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestLogin(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "a@example.com", "hunter2hunter2")

	resp, err := svc.Login(dto.LoginRequest{Email: "a@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@example.com", resp.User.Email)

	_, err = svc.Login(dto.LoginRequest{Email: "a@example.com", Password: "wrong"})
	_, forbidden := apperr.IsForbidden(err)
	assert.True(t, forbidden)
}

func TestLoginPasswordlessAccount(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "guest@example.com", "")

	_, err := svc.Login(dto.LoginRequest{Email: "guest@example.com", Password: "anything"})
	_, forbidden := apperr.IsForbidden(err)
	assert.True(t, forbidden)
}

func TestGuestCheckinCreatesUser(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	resp, err := svc.GuestCheckin(dto.GuestCheckinRequest{Email: "new@example.com", Name: "Sam"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	user, err := userRepo.FindByEmail("new@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.DisplayName)
	assert.Equal(t, "Sam", *user.DisplayName)
}

func TestGuestCheckinProtectsRegisteredAccounts(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "reg@example.com", "hunter2hunter2")

	_, err := svc.GuestCheckin(dto.GuestCheckinRequest{Email: "reg@example.com"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.GuestCheckin(dto.GuestCheckinRequest{Email: "reg@example.com", Password: "wrong"})
	_, forbidden := apperr.IsForbidden(err)
	assert.True(t, forbidden)

	resp, err := svc.GuestCheckin(dto.GuestCheckinRequest{Email: "reg@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "reg@example.com", resp.Email)
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, userRepo, db := newAuthFixture(t)
	seedUser(t, userRepo, "reset@example.com", "oldpassword1")

	require.NoError(t, svc.ForgotPassword(dto.ForgotPasswordRequest{Email: "reset@example.com"}))

	var user model.User
	require.NoError(t, db.First(&user, "email = ?", "reset@example.com").Error)
	require.NotNil(t, user.PasswordResetToken)

	require.NoError(t, svc.ResetPassword(dto.ResetPasswordRequest{
		Token:       *user.PasswordResetToken,
		NewPassword: "brand-new-pass",
	}))

	_, err := svc.Login(dto.LoginRequest{Email: "reset@example.com", Password: "brand-new-pass"})
	require.NoError(t, err)

	// Tokens are single use.
	err = svc.ResetPassword(dto.ResetPasswordRequest{Token: *user.PasswordResetToken, NewPassword: "another-pass1"})
	assert.True(t, apperr.IsValidation(err))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	// Same reply as for a known email, so callers cannot probe accounts.
	assert.NoError(t, svc.ForgotPassword(dto.ForgotPasswordRequest{Email: "nobody@example.com"}))
}

func TestClaimAndReleaseCodename(t *testing.T) {
	svc, _, db := newAuthFixture(t)

	name, err := svc.ClaimCodename()
	require.NoError(t, err)
	require.NotEmpty(t, name)

	var count int64
	require.NoError(t, db.Model(&model.Codename{}).Where("name = ?", name).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.ReleaseCodename(name))
	require.NoError(t, db.Model(&model.Codename{}).Where("name = ?", name).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// A released name is claimable again by direct insert.
	require.NoError(t, db.Create(&model.Codename{Name: name}).Error)
}

func TestClaimCodenameAvoidsTakenNames(t *testing.T) {
	svc, _, db := newAuthFixture(t)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		name, err := svc.ClaimCodename()
		require.NoError(t, err)
		assert.False(t, seen[name], "codename %q handed out twice", name)
		seen[name] = true
	}

	var count int64
	require.NoError(t, db.Model(&model.Codename{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)
}

func TestReleaseCodenameRequiresName(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	assert.True(t, apperr.IsValidation(svc.ReleaseCodename("")))
}
