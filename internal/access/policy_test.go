package access

import (
	"testing"
	"time"

	"github.com/fquiz/fquiz/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerID(id string) *string { return &id }

func gatedSet() *model.Set {
	return &model.Set{
		ID:               "set-s",
		Title:            "Gated",
		Type:             model.SetTypeQuiz,
		CreatedBy:        ownerID("u1"),
		PasscodeRequired: true,
	}
}

func TestCanView_NoPasscodeIsOpen(t *testing.T) {
	s := &model.Set{ID: "set-open", Type: model.SetTypeFlashcards}
	d := CanView(s, Identity{}, "", testSecret, time.Now())
	assert.True(t, d.Allowed)
}

func TestCanView_OwnerBypassesPasscode(t *testing.T) {
	d := CanView(gatedSet(), Identity{UserID: "u1"}, "", testSecret, time.Now())
	assert.True(t, d.Allowed)
}

func TestCanView_AnonymousWithoutTokenDenied(t *testing.T) {
	d := CanView(gatedSet(), Identity{}, "", testSecret, time.Now())
	assert.False(t, d.Allowed)
	assert.Equal(t, "passcode_required", d.Reason)
}

func TestCanView_AnonymousWithValidToken(t *testing.T) {
	token, err := MintGrant(testSecret, "set-s", nil)
	require.NoError(t, err)

	d := CanView(gatedSet(), Identity{}, token, testSecret, time.Now())
	assert.True(t, d.Allowed)
}

func TestCanView_TokenForOtherSetDenied(t *testing.T) {
	token, err := MintGrant(testSecret, "some-other-set", nil)
	require.NoError(t, err)

	d := CanView(gatedSet(), Identity{}, token, testSecret, time.Now())
	assert.False(t, d.Allowed)
	assert.Equal(t, "invalid_grant", d.Reason)
}

func TestCanView_ExpiredGrantDenied(t *testing.T) {
	exp := time.Now().Add(-time.Minute)
	token, err := MintGrant(testSecret, "set-s", &exp)
	require.NoError(t, err)

	d := CanView(gatedSet(), Identity{}, token, testSecret, time.Now())
	assert.False(t, d.Allowed)
	assert.Equal(t, "invalid_grant", d.Reason)
}

func TestCanView_ExpiredConfigurationBlocksTokenHolders(t *testing.T) {
	s := gatedSet()
	past := time.Now().Add(-time.Hour)
	s.PasscodeExpiresAt = &past

	token, err := MintGrant(testSecret, "set-s", nil)
	require.NoError(t, err)

	d := CanView(s, Identity{}, token, testSecret, time.Now())
	assert.False(t, d.Allowed)
	assert.Equal(t, "passcode_expired", d.Reason)
}

func TestCanView_ExpiredConfigurationDoesNotBlockOwner(t *testing.T) {
	s := gatedSet()
	past := time.Now().Add(-time.Hour)
	s.PasscodeExpiresAt = &past

	d := CanView(s, Identity{UserID: "u1"}, "", testSecret, time.Now())
	assert.True(t, d.Allowed)
}

func TestCanEdit_OwnerOnlyByDefault(t *testing.T) {
	s := gatedSet()
	assert.True(t, CanEdit(s, Identity{UserID: "u1"}))
	assert.False(t, CanEdit(s, Identity{UserID: "u2"}))
	assert.False(t, CanEdit(s, Identity{}))
}

func TestCanEdit_PublicEditableIgnoresPasscode(t *testing.T) {
	// A passcode gates visibility, not editability: an anonymous requester
	// with no grant can still edit a public_editable set it cannot view.
	s := gatedSet()
	s.Options.PublicEditable = true

	anon := Identity{}
	assert.True(t, CanEdit(s, anon))

	view := CanView(s, anon, "", testSecret, time.Now())
	assert.False(t, view.Allowed)
}

func TestCanAdmin_OwnerOnly(t *testing.T) {
	s := gatedSet()
	s.Options.PublicEditable = true

	assert.True(t, CanAdmin(s, Identity{UserID: "u1"}, true))
	assert.False(t, CanAdmin(s, Identity{UserID: "u2"}, true), "public_editable must not grant admin")
	assert.False(t, CanAdmin(s, Identity{}, true))
}

func TestCanAdmin_OwnerlessCarveOut(t *testing.T) {
	s := gatedSet()
	s.CreatedBy = nil

	assert.True(t, CanAdmin(s, Identity{UserID: "u2"}, true))
	assert.False(t, CanAdmin(s, Identity{}, true), "anonymous requesters never administer")
	assert.False(t, CanAdmin(s, Identity{UserID: "u2"}, false), "carve-out only applies when the policy flag is on")
}

func TestIsOwner(t *testing.T) {
	s := gatedSet()
	assert.True(t, IsOwner(s, Identity{UserID: "u1"}))
	assert.False(t, IsOwner(s, Identity{UserID: ""}))
	s.CreatedBy = nil
	assert.False(t, IsOwner(s, Identity{UserID: "u1"}))
}
