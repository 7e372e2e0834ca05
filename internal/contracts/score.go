package contracts

import "time"

// ReturnMetrics holds historical return figures for one ticker.
type ReturnMetrics struct {
	Annualized float64 `json:"annualized"`
	OneMonth   float64 `json:"one_month"`
	ThreeMonth float64 `json:"three_month"`
	OneYear    float64 `json:"one_year"`
}

// VolatilityMetrics holds realized risk figures for one ticker.
type VolatilityMetrics struct {
	Annualized        float64 `json:"annualized"`
	Sharpe            float64 `json:"sharpe"`
	MaxDrawdown       float64 `json:"max_drawdown"`
	DownsideDeviation float64 `json:"downside_deviation"`
	Assessment        string  `json:"assessment"`
}

// BetaMetrics holds regression results of stock returns on the benchmark.
type BetaMetrics struct {
	Beta          float64 `json:"beta"`
	RSquared      float64 `json:"r_squared"`
	Alpha         float64 `json:"alpha"` // annualized Jensen's alpha
	TrackingError float64 `json:"tracking_error"`
}

// RatioScore is one fundamental ratio mapped through its step function.
type RatioScore struct {
	Raw   float64 `json:"raw"`
	Score float64 `json:"score"` // one of {0, 0.2, 0.4, 0.6, 0.8, 1.0}
	Label string  `json:"label"`
}

// FundamentalScores holds all five ratio scores plus the weighted composite.
type FundamentalScores struct {
	PE           RatioScore `json:"pe"`
	DE           RatioScore `json:"de"`
	ROE          RatioScore `json:"roe"`
	FCFYield     RatioScore `json:"fcf_yield"`
	ProfitMargin RatioScore `json:"profit_margin"`
	Composite    float64    `json:"composite"`
}

// GrowthScores holds bucketed growth scores plus the composite.
type GrowthScores struct {
	Earnings  float64 `json:"earnings"`
	Revenue   float64 `json:"revenue"`
	Composite float64 `json:"composite"`
}

// FactorContribution is one factor's signed contribution to the raw score,
// plus its share of the positive (or negative) contribution pool.
type FactorContribution struct {
	Factor       string  `json:"factor"`
	Contribution float64 `json:"contribution"`
	Share        float64 `json:"share"`
}

// ScoreResult is the output of scoring one ticker under one risk profile.
// Immutable once computed.
type ScoreResult struct {
	Symbol  string      `json:"symbol"`
	Profile RiskProfile `json:"profile"`

	Score    float64 `json:"score"`     // clamped to [0,1]
	RawScore float64 `json:"raw_score"` // pre-clamping

	Returns      ReturnMetrics     `json:"returns"`
	Fundamentals FundamentalScores `json:"fundamentals"`
	Volatility   VolatilityMetrics `json:"volatility"`
	Beta         BetaMetrics       `json:"beta"`
	Sentiment    float64           `json:"sentiment"`
	Growth       GrowthScores      `json:"growth"`

	Contributions []FactorContribution `json:"contributions"`

	ScoredAt time.Time `json:"scored_at"`
}

// Recommendation maps a score to a discrete action label.
type Recommendation struct {
	Symbol     string      `json:"symbol"`
	Profile    RiskProfile `json:"profile"`
	Action     string      `json:"action"` // Strong Buy, Buy, Hold, Reduce, Sell
	Confidence string      `json:"confidence"`
	Score      float64     `json:"score"`
	RiskNotes  []string    `json:"risk_notes,omitempty"`
}
