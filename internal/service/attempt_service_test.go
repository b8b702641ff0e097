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

type attemptFixture struct {
	svc       AttemptService
	db        *gorm.DB
	set       model.Set
	questions []model.Question
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()

	owner := "owner-1"
	set := model.Set{Title: "Networking basics", Type: model.SetTypeQuiz, IsPublished: true, CreatedBy: &owner}
	require.NoError(t, db.Create(&set).Error)

	questions := []model.Question{
		{SetID: set.ID, Stem: "Q1", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{SetID: set.ID, Stem: "Q2", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{SetID: set.ID, Stem: "Q3", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
	}
	require.NoError(t, db.Create(&questions).Error)

	svc := NewAttemptService(
		repository.NewAttemptRepository(db),
		repository.NewResponseRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewSetRepository(db),
		cfg,
	)
	return &attemptFixture{svc: svc, db: db, set: set, questions: questions}
}

func (f *attemptFixture) start(t *testing.T) *dto.AttemptResponse {
	t.Helper()
	attempt, err := f.svc.StartAttempt(access.Identity{UserID: "taker-1"}, "", dto.StartAttemptRequest{SetID: f.set.ID})
	require.NoError(t, err)
	return attempt
}

func TestSubmitAttemptScoring(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	answers := []struct {
		question model.Question
		chosen   int
		correct  bool
	}{
		{f.questions[0], 0, true},
		{f.questions[1], 3, false},
		{f.questions[2], 2, true},
	}
	for _, a := range answers {
		result, err := f.svc.RecordResponse(attempt.ID, dto.RecordResponseRequest{
			QuestionID:  a.question.ID,
			ChosenIndex: a.chosen,
		})
		require.NoError(t, err)
		assert.Equal(t, a.correct, result.Correct)
	}

	submitted, err := f.svc.SubmitAttempt(attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, submitted.SubmittedAt)
	require.NotNil(t, submitted.Summary)
	assert.Equal(t, dto.AttemptSummary{Total: 3, Correct: 2, Incorrect: 1, Percentage: 67}, *submitted.Summary)
}

func TestSubmitEmptyAttempt(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	submitted, err := f.svc.SubmitAttempt(attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, submitted.Summary)
	assert.Equal(t, dto.AttemptSummary{}, *submitted.Summary)
}

func TestSubmitAttemptIdempotent(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	first, err := f.svc.SubmitAttempt(attempt.ID)
	require.NoError(t, err)
	second, err := f.svc.SubmitAttempt(attempt.ID)
	require.NoError(t, err)
	assert.False(t, second.SubmittedAt.Before(*first.SubmittedAt))
}

func TestRecordResponseDuplicateRejected(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	_, err := f.svc.RecordResponse(attempt.ID, dto.RecordResponseRequest{QuestionID: f.questions[0].ID, ChosenIndex: 0})
	require.NoError(t, err)

	_, err = f.svc.RecordResponse(attempt.ID, dto.RecordResponseRequest{QuestionID: f.questions[0].ID, ChosenIndex: 1})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	submitted, err := f.svc.SubmitAttempt(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, submitted.Summary.Total)
}

func TestRecordResponseUnknownQuestion(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	_, err := f.svc.RecordResponse(attempt.ID, dto.RecordResponseRequest{QuestionID: "no-such-question", ChosenIndex: 0})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestStartAttemptRequiresViewAccess(t *testing.T) {
	f := newAttemptFixture(t)

	hash := "$2a$10$abcdefghijklmnopqrstuvabcdefghijklmnopqrstuvabcdefghi"
	require.NoError(t, f.db.Model(&model.Set{}).Where("id = ?", f.set.ID).
		Updates(map[string]any{"passcode_required": true, "passcode_hash": hash}).Error)

	_, err := f.svc.StartAttempt(access.Identity{}, "", dto.StartAttemptRequest{SetID: f.set.ID})
	require.Error(t, err)
	reason, ok := apperr.IsForbidden(err)
	require.True(t, ok)
	assert.Equal(t, apperr.ReasonPasscodeRequired, reason)

	token, err := access.MintGrant("test-grant-secret", f.set.ID, nil)
	require.NoError(t, err)
	attempt, err := f.svc.StartAttempt(access.Identity{IsGuest: true, Email: "g@example.com"}, token, dto.StartAttemptRequest{SetID: f.set.ID})
	require.NoError(t, err)
	assert.True(t, attempt.IsGuest)
}

func TestSummarizeRounding(t *testing.T) {
	responses := []model.Response{{Correct: true}, {Correct: true}, {Correct: false}}
	assert.Equal(t, 67, Summarize(responses).Percentage)

	responses = []model.Response{{Correct: true}, {Correct: false}, {Correct: false}}
	assert.Equal(t, 33, Summarize(responses).Percentage)
}
