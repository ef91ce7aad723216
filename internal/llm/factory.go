package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/equipcheck/validator/internal/config"
)

// NewClient builds a completion client for the configured provider.
// A missing API key for a hosted provider is a credential failure, not a
// generic configuration error, so callers can map it accordingly.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, &Error{Kind: KindAuth, Err: fmt.Errorf("openai api key not configured")}
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		if cfg.APIKey == "" {
			return nil, &Error{Kind: KindAuth, Err: fmt.Errorf("gemini api key not configured")}
		}
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "claude":
		if cfg.APIKey == "" {
			return nil, &Error{Kind: KindAuth, Err: fmt.Errorf("anthropic api key not configured")}
		}
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama speaks the OpenAI-compatible API; the key is ignored
		// but the client config requires one.
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}

		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
