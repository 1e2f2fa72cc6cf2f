package handlers

import (
	"net/http"

	"reianalyst-backend/models"
	"reianalyst-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalystHandler handles HTTP requests for property analysis
type AnalystHandler struct {
	analystService *service.AnalystService
	logger         *zap.Logger
}

// NewAnalystHandler creates a new analyst handler
func NewAnalystHandler(analystService *service.AnalystService, logger *zap.Logger) *AnalystHandler {
	return &AnalystHandler{
		analystService: analystService,
		logger:         logger,
	}
}

// AnalyzeRequest represents the request body for analyzing a property
type AnalyzeRequest struct {
	Address    string  `json:"address"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Score      float64 `json:"score" binding:"min=0,max=100"`
	CapRate    float64 `json:"capRate"`
	IRR        float64 `json:"irr"`
	CashOnCash float64 `json:"cashOnCash"`
	NOI        float64 `json:"noi"`
}

// AnalyzeProperty handles POST /api/analyze
func (h *AnalystHandler) AnalyzeProperty(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	metrics := models.PropertyMetrics{
		Address:    req.Address,
		Price:      req.Price,
		Score:      req.Score,
		CapRate:    req.CapRate,
		IRR:        req.IRR,
		CashOnCash: req.CashOnCash,
		NOI:        req.NOI,
	}

	recommendation := h.analystService.Classify(metrics)

	h.logger.Info("property analyzed",
		zap.String("analysis_id", uuid.NewString()),
		zap.String("decision", string(recommendation.Decision)),
		zap.Int("confidence", recommendation.Confidence))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recommendation,
	})
}
