package models

// Decision represents the investment recommendation for a property
type Decision string

const (
	DecisionBuy  Decision = "BUY"
	DecisionHold Decision = "HOLD"
	DecisionPass Decision = "PASS"
)

// PropertyMetrics represents the financial metrics of a single property.
// It is constructed per analysis request and never retained.
type PropertyMetrics struct {
	Address    string  `json:"address,omitempty"`
	Price      float64 `json:"price"`
	Score      float64 `json:"score"`
	CapRate    float64 `json:"capRate"`
	IRR        float64 `json:"irr"`
	CashOnCash float64 `json:"cashOnCash"`
	NOI        float64 `json:"noi"`
}

// FinancialSummary holds the derived underwriting figures for a recommendation
type FinancialSummary struct {
	LeveragedIRR       float64 `json:"leveragedIRR"`
	UnleveragedIRR     float64 `json:"unleveragedIRR"`
	DSCR               float64 `json:"dscr"`
	BreakevenOccupancy float64 `json:"breakeven"`
}

// Recommendation represents the result of analyzing a property
type Recommendation struct {
	Decision         Decision         `json:"recommendation"`
	Confidence       int              `json:"confidence"`
	KeyInsights      []string         `json:"keyInsights"`
	Risks            []string         `json:"risks"`
	FinancialSummary FinancialSummary `json:"financialSummary"`
	Reasoning        string           `json:"reasoning"`
}
