package contracts

import "time"

// PriceSeries is a chronologically ordered series of daily closing prices.
type PriceSeries struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates,omitempty"`
	Prices []float64   `json:"prices"`
}

// Returns derives the daily simple-return series, one element shorter than
// the price series. Fewer than 2 prices yields an empty slice.
func (s PriceSeries) Returns() []float64 {
	if len(s.Prices) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(s.Prices)-1)
	for i := 1; i < len(s.Prices); i++ {
		if s.Prices[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, s.Prices[i]/s.Prices[i-1]-1)
	}
	return returns
}

// Last returns the most recent price, or 0 for an empty series.
func (s PriceSeries) Last() float64 {
	if len(s.Prices) == 0 {
		return 0
	}
	return s.Prices[len(s.Prices)-1]
}

// Fundamentals holds balance-sheet and profitability ratios.
// Nil pointer fields mean the value was unavailable upstream; the scoring
// engine substitutes its documented defaults.
type Fundamentals struct {
	PERatio      *float64 `json:"pe_ratio,omitempty"`
	DERatio      *float64 `json:"de_ratio,omitempty"`
	ROE          *float64 `json:"roe,omitempty"`
	FCFYield     *float64 `json:"fcf_yield,omitempty"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
}

// TechnicalIndicators holds the sentiment inputs. Nil fields are excluded
// from the sentiment average rather than defaulted.
type TechnicalIndicators struct {
	CurrentPrice *float64 `json:"current_price,omitempty"`
	MA50         *float64 `json:"ma_50,omitempty"`
	MA200        *float64 `json:"ma_200,omitempty"`
	RSI          *float64 `json:"rsi,omitempty"` // [0,100]
	MACD         *float64 `json:"macd,omitempty"`
	MACDSignal   *float64 `json:"macd_signal,omitempty"`
	Volume       *float64 `json:"volume,omitempty"`
	AvgVolume    *float64 `json:"avg_volume,omitempty"`
}

// GrowthProjections holds forward-looking growth estimates.
type GrowthProjections struct {
	EarningsGrowth float64  `json:"earnings_growth"`
	RevenueGrowth  float64  `json:"revenue_growth"`
	IndustryGrowth float64  `json:"industry_growth"`
	AnalystRating  *float64 `json:"analyst_rating,omitempty"` // tracked, not scored
}

// TickerSnapshot is the full per-ticker market state for one scoring
// request. Built fresh per request and never mutated afterwards.
type TickerSnapshot struct {
	Symbol       string              `json:"symbol"`
	History      PriceSeries         `json:"history"`
	Fundamentals Fundamentals        `json:"fundamentals"`
	Technicals   TechnicalIndicators `json:"technicals"`
	Growth       GrowthProjections   `json:"growth"`
	FetchedAt    time.Time           `json:"fetched_at"`
}

// MarketContext is shared across all tickers scored in one batch so that
// their scores are comparable.
type MarketContext struct {
	Benchmark    PriceSeries `json:"benchmark"`
	RiskFreeRate float64     `json:"risk_free_rate"`
	SectorPE     float64     `json:"sector_pe"`
	SectorDE     float64     `json:"sector_de"`
}
