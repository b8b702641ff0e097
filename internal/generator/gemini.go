package generator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// allowedGeminiModels is a deliberate cost and abuse control: only the flash
// tier is accepted here, unlike the other providers which take any
// caller-supplied model string.
var allowedGeminiModels = map[string]bool{
	"gemini-2.5-flash":         true,
	"gemini-2.5-flash-preview": true,
	"gemini-2.0-flash-exp":     true,
	"gemini-2.0-flash":         true,
}

// GeminiClient sends instruction prompts through the Google Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
	name  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ConfigError{Msg: "gemini API key is missing"}
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if !allowedGeminiModels[model] {
		return nil, &ConfigError{Msg: fmt.Sprintf("gemini model %q is not allowed (allowed: %s)", model, strings.Join(allowedGeminiModelNames(), ", "))}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiClient{
		model: client.GenerativeModel(model),
		name:  model,
	}, nil
}

func (c *GeminiClient) Send(ctx context.Context, instructions string) (string, error) {
	prompt := "You are a helpful assistant that outputs strictly JSON when asked.\n\n" + instructions
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &UpstreamError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &UpstreamError{Provider: "gemini", Err: errors.New("no candidates in response")}
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", &UpstreamError{Provider: "gemini", Err: errors.New("no text content in response")}
	}
	return b.String(), nil
}

func (c *GeminiClient) ModelID() string { return c.name }

func allowedGeminiModelNames() []string {
	names := make([]string, 0, len(allowedGeminiModels))
	for name := range allowedGeminiModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
