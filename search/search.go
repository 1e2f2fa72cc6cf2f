package search

import (
	"context"
	"fmt"
	"os"
	"time"

	"reianalyst-backend/models"
)

// Searcher retrieves web results for a free-text query. Provider payloads
// are adapted to models.SearchResult; unmapped entries are dropped, not
// errored.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// ProviderType represents the search provider backend
type ProviderType string

const (
	ProviderDuckDuckGo ProviderType = "duckduckgo"
)

// Config holds configuration for a searcher
type Config struct {
	Provider   ProviderType
	Endpoint   string
	Timeout    time.Duration
	MaxResults int
}

// NewSearcher creates a searcher instance based on configuration
func NewSearcher(cfg Config) (Searcher, error) {
	switch cfg.Provider {
	case ProviderDuckDuckGo, "":
		return NewDuckDuckGoSearcher(cfg), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}

// NewSearcherFromEnv creates a searcher from environment variables
func NewSearcherFromEnv() (Searcher, error) {
	cfg := Config{
		Provider: ProviderType(os.Getenv("SEARCH_PROVIDER")),
		Endpoint: os.Getenv("SEARCH_ENDPOINT"),
	}
	if v := os.Getenv("SEARCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEARCH_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return NewSearcher(cfg)
}
