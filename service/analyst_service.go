package service

import (
	"fmt"
	"strconv"

	"reianalyst-backend/models"
)

// AnalystService turns a property's financial metrics into a structured
// BUY/HOLD/PASS recommendation. Classification is pure: no I/O, no clock,
// identical input always yields an identical recommendation.
type AnalystService struct {
	underwriting Underwriting
}

// AnalystServiceOption is a functional option for AnalystService
type AnalystServiceOption func(*AnalystService)

// WithUnderwriting overrides the default underwriting policy
func WithUnderwriting(u Underwriting) AnalystServiceOption {
	return func(s *AnalystService) {
		s.underwriting = u
	}
}

// NewAnalystService creates a new analyst service
func NewAnalystService(opts ...AnalystServiceOption) *AnalystService {
	s := &AnalystService{underwriting: DefaultUnderwriting()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify evaluates the decision tiers in precedence order: BUY first,
// then HOLD, then PASS. Tiers overlap on inputs, so the order is the
// tie-break.
func (s *AnalystService) Classify(m models.PropertyMetrics) models.Recommendation {
	u := s.underwriting

	var (
		decision    models.Decision
		confidence  int
		keyInsights []string
		risks       []string
	)

	switch {
	case m.Score >= u.BuyMinScore && m.IRR >= u.BuyMinIRR && m.CapRate >= u.BuyMinCapRate:
		decision = models.DecisionBuy
		confidence = u.BuyConfidence
		keyInsights = []string{
			fmt.Sprintf("Strong IRR of %s%% exceeds %s%% target threshold", metric(m.IRR), metric(u.BuyMinIRR)),
			fmt.Sprintf("Healthy cap rate of %s%% indicates good income yield", metric(m.CapRate)),
			fmt.Sprintf("AI score of %s ranks in top 15%% of analyzed properties", metric(m.Score)),
			fmt.Sprintf("Cash-on-cash return of %s%% provides solid cash flow", metric(m.CashOnCash)),
			"Market fundamentals support continued appreciation",
		}
		risks = []string{
			"Interest rate sensitivity on refinancing",
			"Local market oversupply risk in 18-24 months",
			"Property management scaling challenges",
		}

	case m.Score >= u.HoldMinScore && m.IRR >= u.HoldMinIRR:
		decision = models.DecisionHold
		confidence = u.HoldConfidence
		keyInsights = []string{
			fmt.Sprintf("Moderate IRR of %s%% meets minimum investment criteria", metric(m.IRR)),
			fmt.Sprintf("Cap rate of %s%% is acceptable for current market", metric(m.CapRate)),
			"Property shows stable cash flow generation",
			"Location demographics support tenant demand",
			"Potential for value-add improvements identified",
		}
		risks = []string{
			"Below-average IRR may underperform in rising rate environment",
			"Limited upside without significant capital improvements",
			"Market timing concerns for optimal exit",
		}

	default:
		decision = models.DecisionPass
		confidence = u.PassConfidence
		keyInsights = []string{
			fmt.Sprintf("IRR of %s%% below 10%% minimum threshold", metric(m.IRR)),
			fmt.Sprintf("AI score of %s indicates underperformance risk", metric(m.Score)),
			"Market fundamentals showing weakness",
			"Better opportunities available in current pipeline",
			"Risk-adjusted returns insufficient for portfolio allocation",
		}
		risks = []string{
			"Significant downside risk in economic downturn",
			"Limited exit strategies given market conditions",
			"Opportunity cost of capital deployment",
		}
	}

	return models.Recommendation{
		Decision:    decision,
		Confidence:  confidence,
		KeyInsights: keyInsights,
		Risks:       risks,
		FinancialSummary: models.FinancialSummary{
			LeveragedIRR:       m.IRR,
			UnleveragedIRR:     m.IRR * u.UnleveragedIRRRatio,
			DSCR:               u.DSCR,
			BreakevenOccupancy: u.BreakevenOccupancy,
		},
		Reasoning: reasoning(decision),
	}
}

func reasoning(decision models.Decision) string {
	var clause string
	switch decision {
	case models.DecisionBuy:
		clause = "presents a compelling investment opportunity"
	case models.DecisionHold:
		clause = "shows moderate potential with manageable risks"
	default:
		clause = "does not meet our investment criteria"
	}
	return "Based on comprehensive analysis of financial metrics, market conditions, and risk factors, this property " + clause + "."
}

// metric renders a metric the way it arrived, without trailing zeros
func metric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
