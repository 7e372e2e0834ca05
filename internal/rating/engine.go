// Package rating implements the multi-factor scoring engine. Each factor
// lives in its own file with its own calculator; the engine combines them
// under a risk profile's weight table.
package rating

import (
	"math"
	"time"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/internal/modelconfig"
	"github.com/wonny/folio/pkg/logger"
)

// Final score rescaling constants. Raw scores empirically fall in
// [-0.2, 0.5]; the affine map (raw + rawOffset) / rawRange puts that range
// onto [0,1]. Recommendation thresholds system-wide depend on these exact
// values, so they must not be re-derived.
const (
	rawOffset = 0.2
	rawRange  = 0.7
)

// Engine scores tickers against the factor model. Stateless apart from the
// immutable weight table; Score is a pure function of its inputs.
type Engine struct {
	weights modelconfig.WeightTable
	logger  *logger.Logger
	now     func() time.Time
}

// NewEngine creates a scoring engine with the given weight table.
func NewEngine(weights modelconfig.WeightTable, log *logger.Logger) *Engine {
	return &Engine{
		weights: weights,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source. Apart from the ScoredAt stamp
// the engine is a pure function of its inputs; a fixed clock makes two
// identical calls compare equal.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Score rates one ticker snapshot under the given risk profile.
func (e *Engine) Score(snapshot contracts.TickerSnapshot, market contracts.MarketContext, profile contracts.RiskProfile) contracts.ScoreResult {
	w := e.weights.For(profile)

	riskFree := market.RiskFreeRate
	if riskFree <= 0 {
		riskFree = DefaultRiskFreeRate
	}

	stockReturns := snapshot.History.Returns()
	marketReturns := market.Benchmark.Returns()

	returns := calculateReturns(snapshot.History)
	fundamentals := scoreFundamentals(snapshot.Fundamentals, market, w)
	volatility := calculateVolatility(stockReturns)
	beta := calculateBeta(stockReturns, marketReturns)
	sentiment := scoreSentiment(snapshot.Technicals)
	growth := scoreGrowth(snapshot.Growth)

	terms := []contracts.FactorContribution{
		{Factor: "returns", Contribution: w.Alpha * (returns.Annualized - riskFree)},
		{Factor: "growth", Contribution: w.Beta * growth.Composite},
		{Factor: "fundamentals", Contribution: w.Gamma * fundamentals.Composite},
		{Factor: "volatility", Contribution: -w.Delta * volatility.Annualized},
		{Factor: "beta", Contribution: -w.Epsilon * (beta.Beta - 1)},
		{Factor: "sentiment", Contribution: w.Zeta * sentiment},
	}

	raw := 0.0
	for _, term := range terms {
		raw += term.Contribution
	}

	result := contracts.ScoreResult{
		Symbol:        snapshot.Symbol,
		Profile:       profile,
		Score:         clamp01((raw + rawOffset) / rawRange),
		RawScore:      raw,
		Returns:       returns,
		Fundamentals:  fundamentals,
		Volatility:    volatility,
		Beta:          beta,
		Sentiment:     sentiment,
		Growth:        growth,
		Contributions: attributeShares(terms),
		ScoredAt:      e.now(),
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol":  snapshot.Symbol,
		"profile": profile,
		"score":   result.Score,
		"raw":     result.RawScore,
	}).Debug("Scored ticker")

	return result
}

// attributeShares assigns each factor its share of the positive (or
// negative) contribution pool. A zero pool reports all shares as 0 rather
// than dividing by zero.
func attributeShares(terms []contracts.FactorContribution) []contracts.FactorContribution {
	var positivePool, negativePool float64
	for _, term := range terms {
		if term.Contribution > 0 {
			positivePool += term.Contribution
		} else {
			negativePool += -term.Contribution
		}
	}

	out := make([]contracts.FactorContribution, len(terms))
	for i, term := range terms {
		share := 0.0
		if term.Contribution > 0 && positivePool > 0 {
			share = term.Contribution / positivePool
		} else if term.Contribution < 0 && negativePool > 0 {
			share = -term.Contribution / negativePool
		}
		out[i] = contracts.FactorContribution{
			Factor:       term.Factor,
			Contribution: term.Contribution,
			Share:        share,
		}
	}

	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
