package handlers

import (
	"errors"
	"net/http"
	"time"

	"reianalyst-backend/models"
	"reianalyst-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorFallback is returned alongside unrecoverable errors so the client
// always has something to show.
const errorFallback = "Sorry, I encountered an error while processing your request. Please try again."

// ChatHandler handles HTTP requests for the AI assistant
type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// AssistantRequest represents the request body for the assistant endpoint.
// IncludeSearch defaults to true when omitted.
type AssistantRequest struct {
	Message       string `json:"message"`
	IncludeSearch *bool  `json:"includeSearch"`
}

// Assistant handles POST /api/assistant
func (h *ChatHandler) Assistant(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Message is required",
		})
		return
	}

	allowRetrieval := true
	if req.IncludeSearch != nil {
		allowRetrieval = *req.IncludeSearch
	}

	result, err := h.chatService.Answer(c.Request.Context(), models.ChatQuery{
		Text:           req.Message,
		AllowRetrieval: allowRetrieval,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGeneratorNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Error("assistant request failed", zap.Error(err))
		c.JSON(status, gin.H{
			"error":    err.Error(),
			"fallback": errorFallback,
		})
		return
	}

	if result.State == service.AnswerFallback {
		h.logger.Warn("assistant answered with fallback")
	}

	// Sources marshals to null when no retrieval result was used.
	c.JSON(http.StatusOK, gin.H{
		"response":  result.Answer.Text,
		"sources":   result.Answer.Sources,
		"timestamp": result.Answer.GeneratedAt.Format(time.RFC3339),
	})
}
