package models

import "time"

// SearchResult represents a single web search result used as answer context
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// ChatQuery represents a user question entering the answer pipeline
type ChatQuery struct {
	Text           string
	AllowRetrieval bool
}

// ChatAnswer represents a generated answer. Sources is nil unless at
// least one retrieved result was used to build the answer context, so
// callers can tell "no retrieval" apart from "retrieval found nothing".
type ChatAnswer struct {
	Text        string         `json:"response"`
	Sources     []SearchResult `json:"sources"`
	GeneratedAt time.Time      `json:"timestamp"`
}
