package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "persona", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "question", req.Messages[1].Content)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "generated text"}},
			},
		})
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{APIKey: "test-key", Endpoint: srv.URL})
	text, err := gen.Generate(context.Background(), "persona", "question")
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)
}

func TestOpenAIGenerator_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{APIKey: "test-key", Endpoint: srv.URL})
	_, err := gen.Generate(context.Background(), "persona", "question")
	assert.Error(t, err)
}

func TestOpenAIGenerator_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{APIKey: "test-key", Endpoint: srv.URL})
	_, err := gen.Generate(context.Background(), "persona", "question")
	assert.Error(t, err)
}

func TestOpenAIGenerator_MissingKey(t *testing.T) {
	gen := NewOpenAIGenerator(Config{})
	_, err := gen.Generate(context.Background(), "persona", "question")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewGenerator_MissingKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), Config{Provider: ProviderOpenAI})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewGenerator_UnknownProvider(t *testing.T) {
	_, err := NewGenerator(context.Background(), Config{Provider: "anthropic", APIKey: "k"})
	assert.Error(t, err)
}
