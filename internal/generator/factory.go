package generator

import (
	"context"
	"fmt"

	"github.com/fquiz/fquiz/config"
)

// Options carries the per-request provider selection. APIKey, Model and
// BaseURL are caller overrides; server-side keys from config fill the gaps.
type Options struct {
	Provider string // "basic", "openai", "anthropic", "gemini", "zai"
	APIKey   string
	Model    string
	BaseURL  string
}

// NewClient builds the transport for the requested provider. "basic" is the
// server-keyed fallback: OpenAI with the default model, no caller key needed.
func NewClient(ctx context.Context, cfg *config.Config, opts Options) (Client, error) {
	key := opts.APIKey
	switch opts.Provider {
	case "", "basic":
		if cfg.LLM.OpenAIAPIKey == "" {
			return nil, &ConfigError{Msg: "basic provider is not configured: set OPENAI_API_KEY or bring your own key"}
		}
		return NewOpenAIClient(cfg.LLM.OpenAIAPIKey, defaultOpenAIModel, "")
	case "openai":
		if key == "" {
			key = cfg.LLM.OpenAIAPIKey
		}
		return NewOpenAIClient(key, opts.Model, opts.BaseURL)
	case "anthropic":
		if key == "" {
			key = cfg.LLM.AnthropicAPIKey
		}
		return NewAnthropicClient(key, opts.Model)
	case "gemini":
		if key == "" {
			key = cfg.LLM.GeminiAPIKey
		}
		return NewGeminiClient(ctx, key, opts.Model)
	case "zai":
		if key == "" {
			key = cfg.LLM.ZAIAPIKey
		}
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = cfg.LLM.ZAIBaseURL
		}
		return NewZAIClient(key, opts.Model, baseURL)
	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("unknown provider: %q", opts.Provider)}
	}
}
