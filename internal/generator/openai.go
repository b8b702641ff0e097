package generator

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient sends instruction prompts through the OpenAI chat API. A
// custom BaseURL serves any OpenAI-compatible backend (ZAI uses this path).
type OpenAIClient struct {
	client   *openai.Client
	model    string
	provider string
}

func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	return newOpenAICompatible("openai", apiKey, model, baseURL)
}

// NewZAIClient targets the ZAI chat-completions endpoint, which speaks the
// OpenAI wire format.
func NewZAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if model == "" {
		model = "glm-4.6"
	}
	return newOpenAICompatible("zai", apiKey, model, baseURL)
}

func newOpenAICompatible(provider, apiKey, model, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, &ConfigError{Msg: fmt.Sprintf("%s API key is missing", provider)}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		provider: provider,
	}, nil
}

func (c *OpenAIClient) Send(ctx context.Context, instructions string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant that outputs strictly JSON when asked."},
			{Role: openai.ChatMessageRoleUser, Content: instructions},
		},
	})
	if err != nil {
		return "", mapOpenAIError(c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Provider: c.provider, Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) ModelID() string { return c.model }

func mapOpenAIError(provider string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: provider, Err: apiErr}
	}
	return &UpstreamError{Provider: provider, Err: err}
}
