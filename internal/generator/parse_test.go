package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMCQsHappyPath(t *testing.T) {
	raw := `[
		{"stem":"Q1","choices":["a","b","c","d"],"correct_index":0},
		{"stem":"Q2","choices":["a","b","c","d"],"correct_index":1,"explanation":"because"},
		{"stem":"Q3","choices":["a","b","c","d"],"correct_index":2},
		{"stem":"Q4","choices":["a","b","c","d"],"correct_index":3},
		{"stem":"Q5","choices":["a","b","c","d"],"correct_index":0}
	]`

	mcqs, err := ParseMCQs(raw)
	require.NoError(t, err)
	require.Len(t, mcqs, 5)

	assert.Equal(t, "Q1", mcqs[0].Stem)
	assert.Equal(t, "Q5", mcqs[4].Stem)
	assert.Equal(t, 1, mcqs[1].CorrectIndex)
	require.NotNil(t, mcqs[1].Explanation)
	assert.Equal(t, "because", *mcqs[1].Explanation)
}

func TestParseMCQsRejectsWrongChoiceCount(t *testing.T) {
	raw := "```json\n" + `[{"stem":"Q1","choices":["a","b","c"],"correct_index":0}]` + "\n```"

	_, err := ParseMCQs(raw)
	require.Error(t, err)

	var malformed *MalformedOutputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 0, malformed.Index)
}

func TestParseMCQsAllOrNothing(t *testing.T) {
	// second item has an out-of-range index; the valid first item must not
	// survive on its own
	raw := `[
		{"stem":"Q1","choices":["a","b","c","d"],"correct_index":0},
		{"stem":"Q2","choices":["a","b","c","d"],"correct_index":7}
	]`

	_, err := ParseMCQs(raw)
	var malformed *MalformedOutputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Index)
}

func TestParseMCQsFieldAliases(t *testing.T) {
	raw := `[{"question":"Alias stem","choices":["a","b","c","d"],"answer_index":2}]`

	mcqs, err := ParseMCQs(raw)
	require.NoError(t, err)
	require.Len(t, mcqs, 1)
	assert.Equal(t, "Alias stem", mcqs[0].Stem)
	assert.Equal(t, 2, mcqs[0].CorrectIndex)
}

func TestParseMCQsProseAroundArray(t *testing.T) {
	raw := "Sure! Here are your questions:\n" +
		`[{"stem":"Q1","choices":["a","b","c","d"],"correct_index":1}]` +
		"\nLet me know if you need more."

	mcqs, err := ParseMCQs(raw)
	require.NoError(t, err)
	require.Len(t, mcqs, 1)
}

func TestParseMCQsNoArray(t *testing.T) {
	_, err := ParseMCQs("I cannot generate questions for this input.")
	var malformed *MalformedOutputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, -1, malformed.Index)
}

func TestParseFlashcardsHappyPath(t *testing.T) {
	raw := "```json\n" + `[
		{"term":"HTTP","answer":"Hypertext Transfer Protocol"},
		{"prompt":"TCP","definition":"Transmission Control Protocol"}
	]` + "\n```"

	cards, err := ParseFlashcards(raw)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "HTTP", cards[0].Term)
	assert.Equal(t, "Transmission Control Protocol", cards[1].Answer)
}

func TestParseFlashcardsRejectsEmptyTerm(t *testing.T) {
	raw := `[{"term":"","answer":"orphaned definition"}]`

	_, err := ParseFlashcards(raw)
	var malformed *MalformedOutputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 0, malformed.Index)
}
