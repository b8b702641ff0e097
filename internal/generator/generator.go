// Package generator turns free text into normalized quiz questions or
// flashcards through pluggable LLM backends. Providers are thin transports:
// they send a prepared instruction prompt and hand back raw model text. The
// instruction builder and the response parser are shared across all of them.
package generator

import "context"

// MCQ is a normalized multiple-choice question produced by generation.
// Choices always holds exactly four entries and CorrectIndex points into it.
type MCQ struct {
	Stem         string   `json:"stem"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  *string  `json:"explanation,omitempty"`
}

// Flashcard is a normalized term/answer pair produced by generation.
type Flashcard struct {
	Term        string  `json:"term"`
	Answer      string  `json:"answer"`
	Explanation *string `json:"explanation,omitempty"`
}

// Client is the transport contract a concrete provider implements: send the
// instruction prompt, return the raw response text.
type Client interface {
	Send(ctx context.Context, instructions string) (string, error)
	ModelID() string
}

// Generator combines a transport with the shared prompt builder and parser.
type Generator struct {
	client Client
}

func New(client Client) *Generator {
	return &Generator{client: client}
}

// ModelID exposes the underlying transport's model identifier for logging.
func (g *Generator) ModelID() string { return g.client.ModelID() }

// Questions generates count multiple-choice questions from inputText. The
// caller clamps count to its accepted range before calling; the generator
// returns exactly the items that parsed and validated, all or nothing.
func (g *Generator) Questions(ctx context.Context, inputText string, count int) ([]MCQ, error) {
	raw, err := g.client.Send(ctx, buildMCQInstructions(inputText, count))
	if err != nil {
		return nil, err
	}
	return ParseMCQs(raw)
}

// Cards generates count flashcards from inputText.
func (g *Generator) Cards(ctx context.Context, inputText string, count int) ([]Flashcard, error) {
	raw, err := g.client.Send(ctx, buildFlashcardInstructions(inputText, count))
	if err != nil {
		return nil, err
	}
	return ParseFlashcards(raw)
}
