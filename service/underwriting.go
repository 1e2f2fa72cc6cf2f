package service

import (
	"encoding/json"
	"fmt"
	"os"
)

// Underwriting defines the thresholds and placeholder figures used by the
// analyst. DSCR and breakeven occupancy are fixed placeholders until a real
// underwriting model replaces them; keeping them here means swapping that
// model in never touches the decision logic.
type Underwriting struct {
	BuyMinScore   float64 `json:"buy_min_score"`
	BuyMinIRR     float64 `json:"buy_min_irr"`
	BuyMinCapRate float64 `json:"buy_min_cap_rate"`
	HoldMinScore  float64 `json:"hold_min_score"`
	HoldMinIRR    float64 `json:"hold_min_irr"`

	BuyConfidence  int `json:"buy_confidence"`
	HoldConfidence int `json:"hold_confidence"`
	PassConfidence int `json:"pass_confidence"`

	UnleveragedIRRRatio float64 `json:"unleveraged_irr_ratio"`
	DSCR                float64 `json:"dscr"`
	BreakevenOccupancy  float64 `json:"breakeven_occupancy"`
}

// DefaultUnderwriting returns the current investment policy.
func DefaultUnderwriting() Underwriting {
	return Underwriting{
		BuyMinScore:   85,
		BuyMinIRR:     12,
		BuyMinCapRate: 7,
		HoldMinScore:  70,
		HoldMinIRR:    8,

		BuyConfidence:  92,
		HoldConfidence: 78,
		PassConfidence: 85,

		UnleveragedIRRRatio: 0.75,
		DSCR:                1.45,
		BreakevenOccupancy:  78,
	}
}

// LoadUnderwritingFromFile loads underwriting policy from a JSON file,
// falling back to defaults on read errors. A decode error never leaks a
// half-overwritten policy: the returned value is the pristine defaults.
func LoadUnderwritingFromFile(path string) (Underwriting, error) {
	defaults := DefaultUnderwriting()
	b, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("read underwriting file: %w", err)
	}
	loaded := defaults
	if err := json.Unmarshal(b, &loaded); err != nil {
		return defaults, fmt.Errorf("unmarshal underwriting: %w", err)
	}
	return loaded, nil
}
