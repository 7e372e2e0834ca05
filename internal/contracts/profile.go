package contracts

import (
	"fmt"
	"math"
	"strings"
)

// RiskProfile selects a fixed set of model weights for scoring.
type RiskProfile string

const (
	RiskLow    RiskProfile = "low"
	RiskMedium RiskProfile = "medium"
	RiskHigh   RiskProfile = "high"
)

// ParseRiskProfile converts a string to a RiskProfile.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "conservative":
		return RiskLow, nil
	case "medium", "moderate", "":
		return RiskMedium, nil
	case "high", "aggressive":
		return RiskHigh, nil
	default:
		return "", fmt.Errorf("unknown risk profile: %q", s)
	}
}

// IsValid reports whether the profile is one of the known values.
func (p RiskProfile) IsValid() bool {
	return p == RiskLow || p == RiskMedium || p == RiskHigh
}

// ModelWeights holds the scoring coefficients for one risk profile.
//
// Alpha..Zeta weight the six factor terms (returns premium, growth,
// fundamentals, volatility penalty, beta penalty, sentiment).
// W1..W5 weight the five fundamental ratios (P/E, D/E, ROE, FCF yield,
// profit margin). Each group must sum to 1.0; Normalize enforces that.
type ModelWeights struct {
	Alpha   float64 `json:"alpha" yaml:"alpha"`
	Beta    float64 `json:"beta" yaml:"beta"`
	Gamma   float64 `json:"gamma" yaml:"gamma"`
	Delta   float64 `json:"delta" yaml:"delta"`
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
	Zeta    float64 `json:"zeta" yaml:"zeta"`

	W1 float64 `json:"w1" yaml:"w1"` // P/E
	W2 float64 `json:"w2" yaml:"w2"` // D/E
	W3 float64 `json:"w3" yaml:"w3"` // ROE
	W4 float64 `json:"w4" yaml:"w4"` // FCF yield
	W5 float64 `json:"w5" yaml:"w5"` // profit margin
}

// Normalize rescales each weight group proportionally so it sums to 1.0.
// A group whose sum is 0 is left untouched.
func (w ModelWeights) Normalize() ModelWeights {
	factorSum := w.Alpha + w.Beta + w.Gamma + w.Delta + w.Epsilon + w.Zeta
	if factorSum != 0 {
		w.Alpha /= factorSum
		w.Beta /= factorSum
		w.Gamma /= factorSum
		w.Delta /= factorSum
		w.Epsilon /= factorSum
		w.Zeta /= factorSum
	}

	subSum := w.W1 + w.W2 + w.W3 + w.W4 + w.W5
	if subSum != 0 {
		w.W1 /= subSum
		w.W2 /= subSum
		w.W3 /= subSum
		w.W4 /= subSum
		w.W5 /= subSum
	}

	return w
}

// Validate checks that both weight groups sum to 1.0 within tolerance.
func (w ModelWeights) Validate() error {
	factorSum := w.Alpha + w.Beta + w.Gamma + w.Delta + w.Epsilon + w.Zeta
	if math.Abs(factorSum-1.0) > 1e-9 {
		return fmt.Errorf("factor weights sum to %.12f, want 1.0", factorSum)
	}

	subSum := w.W1 + w.W2 + w.W3 + w.W4 + w.W5
	if math.Abs(subSum-1.0) > 1e-9 {
		return fmt.Errorf("fundamental sub-weights sum to %.12f, want 1.0", subSum)
	}

	return nil
}
