package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Generator produces natural-language text from a system context and a
// user message. Implementations wrap an opaque text-completion service;
// the credential comes from process configuration, never per request.
type Generator interface {
	Generate(ctx context.Context, systemContext, userMessage string) (string, error)
}

// ProviderType represents the generation provider backend
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
)

var (
	// ErrMissingAPIKey means the provider credential is absent. This is a
	// configuration error for the whole service instance, not a
	// per-request one.
	ErrMissingAPIKey = errors.New("generation API key not configured")
)

// Config holds configuration for a generator
type Config struct {
	Provider    ProviderType
	APIKey      string
	Endpoint    string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// NewGenerator creates a generator instance based on configuration
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIGenerator(cfg), nil
	case ProviderGemini:
		return NewGeminiGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
}

// NewGeneratorFromEnv creates a generator from environment variables.
// LLM_PROVIDER selects the backend; each backend reads its own key.
func NewGeneratorFromEnv(ctx context.Context) (Generator, error) {
	provider := ProviderType(os.Getenv("LLM_PROVIDER"))

	cfg := Config{
		Provider: provider,
		Endpoint: os.Getenv("LLM_ENDPOINT"),
		Model:    os.Getenv("LLM_MODEL"),
	}

	switch provider {
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return NewGenerator(ctx, cfg)
}
