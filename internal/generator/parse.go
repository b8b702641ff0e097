package generator

import (
	"encoding/json"
	"strings"
)

// rawMCQ accepts the field aliases models tend to emit before normalization.
type rawMCQ struct {
	Stem         string  `json:"stem"`
	Question     string  `json:"question"`
	ChoicesRaw   []any   `json:"choices"`
	CorrectIndex *int    `json:"correct_index"`
	AnswerIndex  *int    `json:"answer_index"`
	Explanation  *string `json:"explanation"`
}

type rawFlashcard struct {
	Term        string  `json:"term"`
	Prompt      string  `json:"prompt"`
	Answer      string  `json:"answer"`
	Definition  string  `json:"definition"`
	Explanation *string `json:"explanation"`
}

// stripCodeFences removes Markdown code fences while keeping their content.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}

// extractArray locates the outermost JSON array in text, tolerating prose
// the model may emit around it despite instructions.
func extractArray(raw string) (string, error) {
	text := strings.TrimSpace(stripCodeFences(raw))
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return "", &MalformedOutputError{Index: -1, Msg: "model did not return a JSON array"}
	}
	return text[start : end+1], nil
}

// ParseMCQs parses and validates model output into MCQ items. Validation is
// all-or-nothing: the first structurally invalid item fails the whole batch.
func ParseMCQs(raw string) ([]MCQ, error) {
	jsonStr, err := extractArray(raw)
	if err != nil {
		return nil, err
	}
	var items []rawMCQ
	if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
		return nil, &MalformedOutputError{Index: -1, Msg: "invalid JSON: " + err.Error()}
	}

	out := make([]MCQ, 0, len(items))
	for i, it := range items {
		q := MCQ{
			Stem:        strings.TrimSpace(firstNonEmpty(it.Stem, it.Question)),
			Explanation: it.Explanation,
		}
		for _, c := range it.ChoicesRaw {
			s, ok := c.(string)
			if !ok {
				return nil, &MalformedOutputError{Index: i, Msg: "choice is not a string"}
			}
			q.Choices = append(q.Choices, s)
		}
		switch {
		case it.CorrectIndex != nil:
			q.CorrectIndex = *it.CorrectIndex
		case it.AnswerIndex != nil:
			q.CorrectIndex = *it.AnswerIndex
		}

		if q.Stem == "" {
			return nil, &MalformedOutputError{Index: i, Msg: "missing stem"}
		}
		if len(q.Choices) != 4 {
			return nil, &MalformedOutputError{Index: i, Msg: "choices must have 4 items"}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return nil, &MalformedOutputError{Index: i, Msg: "correct_index out of range"}
		}
		out = append(out, q)
	}
	return out, nil
}

// ParseFlashcards parses and validates model output into Flashcard items.
func ParseFlashcards(raw string) ([]Flashcard, error) {
	jsonStr, err := extractArray(raw)
	if err != nil {
		return nil, err
	}
	var items []rawFlashcard
	if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
		return nil, &MalformedOutputError{Index: -1, Msg: "invalid JSON: " + err.Error()}
	}

	out := make([]Flashcard, 0, len(items))
	for i, it := range items {
		c := Flashcard{
			Term:        strings.TrimSpace(firstNonEmpty(it.Term, it.Prompt)),
			Answer:      strings.TrimSpace(firstNonEmpty(it.Answer, it.Definition)),
			Explanation: it.Explanation,
		}
		if c.Term == "" {
			return nil, &MalformedOutputError{Index: i, Msg: "missing term"}
		}
		if c.Answer == "" {
			return nil, &MalformedOutputError{Index: i, Msg: "missing answer"}
		}
		out = append(out, c)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
