package service

import (
	"testing"

	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSetFixture(t *testing.T) (SetService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewSetService(repository.NewSetRepository(db), newTestConfig()), db
}

func TestCreateAndGetSet(t *testing.T) {
	svc, _ := newSetFixture(t)
	owner := access.Identity{UserID: "u1", Email: "u1@example.com"}

	created, err := svc.CreateSet(owner, dto.CreateSetRequest{
		Title:       "Go fundamentals",
		Type:        model.SetTypeQuiz,
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.True(t, created.CanEdit)
	assert.True(t, created.CanAdmin)

	fetched, err := svc.GetSet(created.ID, access.Identity{}, "")
	require.NoError(t, err)
	assert.Equal(t, "Go fundamentals", fetched.Title)
	assert.False(t, fetched.CanEdit)
}

func TestCreateSetRejectsBadOptions(t *testing.T) {
	svc, _ := newSetFixture(t)

	_, err := svc.CreateSet(access.Identity{UserID: "u1"}, dto.CreateSetRequest{
		Title:   "Bad options",
		Type:    model.SetTypeQuiz,
		Options: &dto.OptionsPayload{Reveal: "sometimes"},
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestListSetsVisibility(t *testing.T) {
	svc, _ := newSetFixture(t)
	owner := access.Identity{UserID: "u1"}

	_, err := svc.CreateSet(owner, dto.CreateSetRequest{Title: "Public", Type: model.SetTypeQuiz, IsPublished: true})
	require.NoError(t, err)
	_, err = svc.CreateSet(owner, dto.CreateSetRequest{Title: "Draft", Type: model.SetTypeQuiz})
	require.NoError(t, err)

	anon, err := svc.ListSets(access.Identity{})
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, "Public", anon[0].Title)

	own, err := svc.ListSets(owner)
	require.NoError(t, err)
	assert.Len(t, own, 2)
}

func TestGetUnpublishedSetByDirectID(t *testing.T) {
	svc, _ := newSetFixture(t)

	created, err := svc.CreateSet(access.Identity{UserID: "u1"}, dto.CreateSetRequest{Title: "Draft", Type: model.SetTypeQuiz})
	require.NoError(t, err)

	// Unpublished keeps the set out of anonymous listings, not out of reach.
	fetched, err := svc.GetSet(created.ID, access.Identity{}, "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestUpdateSetSplitsEditAndAdmin(t *testing.T) {
	svc, _ := newSetFixture(t)
	owner := access.Identity{UserID: "u1"}

	created, err := svc.CreateSet(owner, dto.CreateSetRequest{
		Title:   "Editable by all",
		Type:    model.SetTypeQuiz,
		Options: &dto.OptionsPayload{PublicEditable: true},
	})
	require.NoError(t, err)

	stranger := access.Identity{UserID: "u2"}
	newTitle := "Renamed by stranger"

	// public_editable lets a stranger touch content fields.
	updated, err := svc.UpdateSet(created.ID, stranger, dto.UpdateSetRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	// Publish state stays owner-only.
	published := true
	_, err = svc.UpdateSet(created.ID, stranger, dto.UpdateSetRequest{IsPublished: &published})
	reason, ok := apperr.IsForbidden(err)
	require.True(t, ok)
	assert.Equal(t, apperr.ReasonNotOwner, reason)

	_, err = svc.UpdateSet(created.ID, owner, dto.UpdateSetRequest{IsPublished: &published})
	require.NoError(t, err)
}

func TestDeleteSetOwnerlessCarveOut(t *testing.T) {
	svc, db := newSetFixture(t)

	legacy := model.Set{Title: "Legacy", Type: model.SetTypeFlashcards}
	require.NoError(t, db.Create(&legacy).Error)

	err := svc.DeleteSet(legacy.ID, access.Identity{})
	_, ok := apperr.IsForbidden(err)
	assert.True(t, ok)

	require.NoError(t, svc.DeleteSet(legacy.ID, access.Identity{UserID: "anyone"}))
}
