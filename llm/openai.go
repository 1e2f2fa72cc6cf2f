package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-4o-mini"

	defaultGenTimeout     = 30 * time.Second
	defaultGenTemperature = 0.7
	defaultMaxTokens      = 1000
)

// OpenAIGenerator calls an OpenAI-compatible chat-completions endpoint.
type OpenAIGenerator struct {
	apiKey      string
	endpoint    string
	model       string
	temperature float64
	client      *http.Client
}

// NewOpenAIGenerator creates an OpenAI-backed generator
func NewOpenAIGenerator(cfg Config) *OpenAIGenerator {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = openAIEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = openAIModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGenTimeout
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultGenTemperature
	}
	return &OpenAIGenerator{
		apiKey:      cfg.APIKey,
		endpoint:    endpoint,
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// Generate sends the system context and user message to the completions
// endpoint and returns the generated text.
func (g *OpenAIGenerator) Generate(ctx context.Context, systemContext, userMessage string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemContext},
			{"role": "user", "content": userMessage},
		},
		"max_tokens":  defaultMaxTokens,
		"temperature": g.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message,omitempty"`
		} `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error.Message != "" {
		return "", fmt.Errorf("generation API error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("generation API returned empty content")
	}

	return apiResp.Choices[0].Message.Content, nil
}
