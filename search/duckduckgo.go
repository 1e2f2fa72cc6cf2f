package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reianalyst-backend/models"

	"github.com/avast/retry-go/v4"
)

const (
	defaultEndpoint   = "https://api.duckduckgo.com/"
	defaultTimeout    = 5 * time.Second
	defaultMaxResults = 3

	searchAttempts   = 2
	searchRetryDelay = 200 * time.Millisecond

	// Used when a topic has no " - " delimiter to derive a title from.
	genericTitle = "Related Topic"
)

// DuckDuckGoSearcher queries the DuckDuckGo instant-answer API.
type DuckDuckGoSearcher struct {
	endpoint   string
	client     *http.Client
	maxResults int
}

// NewDuckDuckGoSearcher creates a DuckDuckGo-backed searcher
func NewDuckDuckGoSearcher(cfg Config) *DuckDuckGoSearcher {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &DuckDuckGoSearcher{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: timeout},
		maxResults: maxResults,
	}
}

// Search queries the instant-answer API and adapts RelatedTopics entries
// to search results. Entries missing text or a URL are dropped. The
// request is retried once on transport failure; retrieval failure is
// non-fatal for callers, so a short bounded retry is all it gets.
func (s *DuckDuckGoSearcher) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	u.RawQuery = q.Encode()

	var payload struct {
		RelatedTopics []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"RelatedTopics"`
	}

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
			if err != nil {
				return err
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("search api returned status %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&payload)
		},
		retry.Attempts(searchAttempts),
		retry.Delay(searchRetryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	// Only the first maxResults topics are considered; malformed entries
	// among them are dropped rather than replaced by later ones.
	topics := payload.RelatedTopics
	if len(topics) > s.maxResults {
		topics = topics[:s.maxResults]
	}

	results := make([]models.SearchResult, 0, len(topics))
	for _, topic := range topics {
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		results = append(results, models.SearchResult{
			Title:   topicTitle(topic.Text),
			Snippet: topic.Text,
			Link:    topic.FirstURL,
		})
	}
	return results, nil
}

// topicTitle derives a title by truncating the topic text at the first
// " - " delimiter.
func topicTitle(text string) string {
	title := strings.SplitN(text, " - ", 2)[0]
	if title == "" {
		return genericTitle
	}
	return title
}
