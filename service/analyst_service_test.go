package service

import (
	"os"
	"path/filepath"
	"testing"

	"reianalyst-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Tiers(t *testing.T) {
	svc := NewAnalystService()

	tests := []struct {
		name           string
		metrics        models.PropertyMetrics
		wantDecision   models.Decision
		wantConfidence int
	}{
		{
			name:           "all buy thresholds met",
			metrics:        models.PropertyMetrics{Price: 342000, Score: 92, CapRate: 7.8, IRR: 16.2, CashOnCash: 9.1, NOI: 26676},
			wantDecision:   models.DecisionBuy,
			wantConfidence: 92,
		},
		{
			name:           "buy thresholds exactly at boundary",
			metrics:        models.PropertyMetrics{Price: 100000, Score: 85, CapRate: 7, IRR: 12},
			wantDecision:   models.DecisionBuy,
			wantConfidence: 92,
		},
		{
			name:           "cap rate below buy tier falls to hold",
			metrics:        models.PropertyMetrics{Price: 100000, Score: 90, CapRate: 5, IRR: 14},
			wantDecision:   models.DecisionHold,
			wantConfidence: 78,
		},
		{
			name:           "hold thresholds exactly at boundary",
			metrics:        models.PropertyMetrics{Price: 100000, Score: 70, CapRate: 4, IRR: 8},
			wantDecision:   models.DecisionHold,
			wantConfidence: 78,
		},
		{
			name:           "score below hold tier",
			metrics:        models.PropertyMetrics{Price: 100000, Score: 65, CapRate: 9, IRR: 15},
			wantDecision:   models.DecisionPass,
			wantConfidence: 85,
		},
		{
			name:           "negative cash flow property",
			metrics:        models.PropertyMetrics{Price: 100000, Score: 40, CapRate: 2, IRR: -3, CashOnCash: -1.5},
			wantDecision:   models.DecisionPass,
			wantConfidence: 85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := svc.Classify(tt.metrics)
			assert.Equal(t, tt.wantDecision, rec.Decision)
			assert.Equal(t, tt.wantConfidence, rec.Confidence)
			assert.NotEmpty(t, rec.KeyInsights)
			assert.NotEmpty(t, rec.Risks)
			assert.NotEmpty(t, rec.Reasoning)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	svc := NewAnalystService()
	m := models.PropertyMetrics{Price: 250000, Score: 88, CapRate: 7.2, IRR: 13.4, CashOnCash: 6.5, NOI: 18000}

	first := svc.Classify(m)
	second := svc.Classify(m)
	assert.Equal(t, first, second)
}

func TestClassify_FinancialSummary(t *testing.T) {
	svc := NewAnalystService()
	rec := svc.Classify(models.PropertyMetrics{Price: 342000, Score: 92, CapRate: 7.8, IRR: 16.2, CashOnCash: 9.1, NOI: 26676})

	require.Equal(t, models.DecisionBuy, rec.Decision)
	assert.Equal(t, 92, rec.Confidence)
	assert.Equal(t, 16.2, rec.FinancialSummary.LeveragedIRR)
	assert.InDelta(t, 12.15, rec.FinancialSummary.UnleveragedIRR, 1e-9)
	assert.Equal(t, 1.45, rec.FinancialSummary.DSCR)
	assert.Equal(t, 78.0, rec.FinancialSummary.BreakevenOccupancy)
}

func TestClassify_InsightsInterpolateMetrics(t *testing.T) {
	svc := NewAnalystService()
	rec := svc.Classify(models.PropertyMetrics{Price: 342000, Score: 92, CapRate: 7.8, IRR: 16.2, CashOnCash: 9.1, NOI: 26676})

	assert.Contains(t, rec.KeyInsights[0], "16.2%")
	assert.Contains(t, rec.KeyInsights[1], "7.8%")
	assert.Contains(t, rec.KeyInsights[2], "92")
	assert.Contains(t, rec.KeyInsights[3], "9.1%")
}

func TestClassify_CustomUnderwriting(t *testing.T) {
	u := DefaultUnderwriting()
	u.DSCR = 1.8
	u.BreakevenOccupancy = 65
	u.BuyMinScore = 95

	svc := NewAnalystService(WithUnderwriting(u))
	rec := svc.Classify(models.PropertyMetrics{Price: 100000, Score: 92, CapRate: 8, IRR: 14})

	// Score 92 no longer clears the raised BUY bar.
	assert.Equal(t, models.DecisionHold, rec.Decision)
	assert.Equal(t, 1.8, rec.FinancialSummary.DSCR)
	assert.Equal(t, 65.0, rec.FinancialSummary.BreakevenOccupancy)
}

func TestLoadUnderwritingFromFile_MissingFile(t *testing.T) {
	u, err := LoadUnderwritingFromFile("nonexistent.json")
	assert.Error(t, err)
	assert.Equal(t, DefaultUnderwriting(), u)
}

func TestLoadUnderwritingFromFile_BadFieldKeepsDefaults(t *testing.T) {
	// dscr decodes before the type error on buy_min_score; the error
	// path must still hand back the untouched defaults.
	path := filepath.Join(t.TempDir(), "underwriting.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dscr": 9.9, "buy_min_score": "high"}`), 0o644))

	u, err := LoadUnderwritingFromFile(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultUnderwriting(), u)
}
