package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"reianalyst-backend/llm"
	"reianalyst-backend/models"
	"reianalyst-backend/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnswerState is the terminal state of one pass through the answer
// pipeline. Retrieval failure never reaches Fallback; only generator
// failure does.
type AnswerState string

const (
	AnswerSucceeded AnswerState = "succeeded"
	AnswerFallback  AnswerState = "fallback"
)

// AnswerResult carries either a generated answer or the fallback answer.
// Answer is always populated, so callers never interpret raw transport
// errors.
type AnswerResult struct {
	Answer models.ChatAnswer
	State  AnswerState
}

var (
	// ErrGeneratorNotConfigured means the service was started without a
	// generation credential; surfaced as a 5xx, not recoverable per request.
	ErrGeneratorNotConfigured = errors.New("response generator not configured")
)

const (
	defaultSearchTimeout   = 5 * time.Second
	defaultGenerateTimeout = 30 * time.Second

	maxContextResults = 3

	assistantPersona = `You are an intelligent AI assistant with access to real-time information. You specialize in providing accurate, helpful, and up-to-date responses.

Key instructions:
- Provide detailed, informative responses
- Use real-time information when available
- Be conversational and helpful
- Include relevant links or sources when appropriate
- Support both English and Hindi languages
- Format responses clearly with proper structure`

	fallbackAnswerText = "I would be glad to help — please rephrase your question or try again shortly"
)

// ChatService sequences the answer pipeline: route the question,
// optionally retrieve web context, then generate.
type ChatService struct {
	router    *QueryRouter
	searcher  search.Searcher
	generator llm.Generator
	logger    *zap.Logger

	searchTimeout   time.Duration
	generateTimeout time.Duration
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithRouter sets the query router
func ChatWithRouter(router *QueryRouter) ChatServiceOption {
	return func(s *ChatService) {
		s.router = router
	}
}

// ChatWithSearcher sets the retrieval client
func ChatWithSearcher(searcher search.Searcher) ChatServiceOption {
	return func(s *ChatService) {
		s.searcher = searcher
	}
}

// ChatWithGenerator sets the response generator
func ChatWithGenerator(generator llm.Generator) ChatServiceOption {
	return func(s *ChatService) {
		s.generator = generator
	}
}

// ChatWithLogger sets the logger
func ChatWithLogger(logger *zap.Logger) ChatServiceOption {
	return func(s *ChatService) {
		s.logger = logger
	}
}

// ChatWithSearchTimeout bounds the retrieval call
func ChatWithSearchTimeout(d time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		s.searchTimeout = d
	}
}

// ChatWithGenerateTimeout bounds the generation call
func ChatWithGenerateTimeout(d time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		s.generateTimeout = d
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		searchTimeout:   defaultSearchTimeout,
		generateTimeout: defaultGenerateTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.router == nil {
		s.router = NewQueryRouter(nil)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Answer runs one question through the pipeline and always returns a
// usable ChatAnswer. The only errors it returns are configuration
// problems; every external failure is absorbed into the result.
func (s *ChatService) Answer(ctx context.Context, query models.ChatQuery) (*AnswerResult, error) {
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	answerID := uuid.New()
	logger := s.logger.With(zap.String("answer_id", answerID.String()))

	results := s.retrieve(ctx, logger, query)

	gctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	text, err := s.generator.Generate(gctx, buildSystemContext(results), query.Text)
	if err != nil {
		logger.Warn("generation failed, answering with fallback", zap.Error(err))
		return &AnswerResult{
			State: AnswerFallback,
			Answer: models.ChatAnswer{
				Text:        fallbackAnswerText,
				GeneratedAt: time.Now().UTC(),
			},
		}, nil
	}

	answer := models.ChatAnswer{
		Text:        text,
		GeneratedAt: time.Now().UTC(),
	}
	if len(results) > 0 {
		answer.Sources = results
	}

	logger.Info("answer generated", zap.Int("sources", len(results)))
	return &AnswerResult{State: AnswerSucceeded, Answer: answer}, nil
}

// retrieve runs the optional retrieval step. Any failure here collapses
// to an empty result set and the pipeline continues.
func (s *ChatService) retrieve(ctx context.Context, logger *zap.Logger, query models.ChatQuery) []models.SearchResult {
	if !query.AllowRetrieval || s.searcher == nil {
		return nil
	}
	if !s.router.NeedsRetrieval(query.Text) {
		return nil
	}

	logger.Debug("retrieving real-time context", zap.String("class", s.router.Route(query.Text)))

	sctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	results, err := s.searcher.Search(sctx, query.Text)
	if err != nil {
		logger.Warn("retrieval failed, continuing without context", zap.Error(err))
		return nil
	}
	if len(results) > maxContextResults {
		results = results[:maxContextResults]
	}
	return results
}

// buildSystemContext renders the generation context: the assistant
// persona, plus a block of retrieved results when there are any.
func buildSystemContext(results []models.SearchResult) string {
	if len(results) == 0 {
		return assistantPersona
	}

	var sb strings.Builder
	sb.WriteString(assistantPersona)
	sb.WriteString("\n\nRecent information from web search:\n")
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- " + r.Title + ": " + r.Snippet)
	}
	return sb.String()
}
