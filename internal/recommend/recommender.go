// Package recommend maps investment scores to discrete action labels.
package recommend

import (
	"fmt"
	"math"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/logger"
)

// Action labels, strongest first.
const (
	ActionStrongBuy = "Strong Buy"
	ActionBuy       = "Buy"
	ActionHold      = "Hold"
	ActionReduce    = "Reduce"
	ActionSell      = "Sell"
)

// Risk-note trigger levels.
const (
	highVolatilityLevel = 0.25
	highBetaLevel       = 1.5
	weakDEScoreLevel    = 0.3
	weakGrowthLevel     = 0.3
)

// thresholds are the score cutoffs for Strong Buy, Buy, Hold and Reduce in
// that order; anything below the last is a Sell. Low-risk profiles demand
// higher scores before recommending a buy.
type thresholds [4]float64

var profileThresholds = map[contracts.RiskProfile]thresholds{
	contracts.RiskLow:    {0.80, 0.70, 0.50, 0.30},
	contracts.RiskMedium: {0.75, 0.60, 0.40, 0.25},
	contracts.RiskHigh:   {0.70, 0.50, 0.30, 0.20},
}

// Recommender converts score results into recommendations. Deterministic
// and stateless.
type Recommender struct {
	logger *logger.Logger
}

// New creates a recommender.
func New(log *logger.Logger) *Recommender {
	return &Recommender{logger: log}
}

// Recommend maps a score result to an action with confidence and risk
// notes. Unknown profiles use the medium thresholds.
func (r *Recommender) Recommend(result contracts.ScoreResult, profile contracts.RiskProfile) contracts.Recommendation {
	cuts, ok := profileThresholds[profile]
	if !ok {
		profile = contracts.RiskMedium
		cuts = profileThresholds[profile]
	}

	action := ActionSell
	switch {
	case result.Score >= cuts[0]:
		action = ActionStrongBuy
	case result.Score >= cuts[1]:
		action = ActionBuy
	case result.Score >= cuts[2]:
		action = ActionHold
	case result.Score >= cuts[3]:
		action = ActionReduce
	}

	rec := contracts.Recommendation{
		Symbol:     result.Symbol,
		Profile:    profile,
		Action:     action,
		Confidence: confidence(result.Score, cuts),
		Score:      result.Score,
		RiskNotes:  riskNotes(result),
	}

	r.logger.WithFields(map[string]interface{}{
		"symbol":  result.Symbol,
		"profile": profile,
		"action":  action,
		"score":   result.Score,
	}).Debug("Generated recommendation")

	return rec
}

// confidence reflects how far the score sits from the nearest threshold: a
// score close to a cutoff could flip with small input changes.
func confidence(score float64, cuts thresholds) string {
	nearest := math.Inf(1)
	for _, cut := range cuts {
		if d := math.Abs(score - cut); d < nearest {
			nearest = d
		}
	}

	switch {
	case nearest >= 0.10:
		return "High"
	case nearest >= 0.05:
		return "Medium"
	default:
		return "Low"
	}
}

// riskNotes flags the conditions a reader should know about regardless of
// the headline action.
func riskNotes(result contracts.ScoreResult) []string {
	var notes []string

	if result.Volatility.Annualized > highVolatilityLevel {
		notes = append(notes, fmt.Sprintf(
			"High volatility: %.1f%% annualized", result.Volatility.Annualized*100))
	}
	if result.Beta.Beta > highBetaLevel {
		notes = append(notes, fmt.Sprintf(
			"High market sensitivity: beta %.2f", result.Beta.Beta))
	}
	if result.Fundamentals.DE.Score < weakDEScoreLevel {
		notes = append(notes, fmt.Sprintf(
			"Elevated leverage: D/E rated %s", result.Fundamentals.DE.Label))
	}
	if result.Growth.Composite < weakGrowthLevel {
		notes = append(notes, "Weak growth outlook relative to industry")
	}

	return notes
}
