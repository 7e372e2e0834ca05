package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationRequest configures one portfolio allocation run.
type AllocationRequest struct {
	InvestmentAmount  decimal.Decimal `json:"investment_amount"`
	MinScore          float64         `json:"min_score"`
	RiskAversion      float64         `json:"risk_aversion"`        // >= 0
	MaxWeightPerStock float64         `json:"max_weight_per_stock"` // in (0, 1]
	Profile           RiskProfile     `json:"profile"`
	Lookback          string          `json:"lookback,omitempty"` // e.g. "1y"
}

// Position is one allocated holding. Amount is the dollar allocation.
type Position struct {
	Symbol string          `json:"symbol"`
	Price  float64         `json:"price"`
	Weight float64         `json:"weight"`
	Amount decimal.Decimal `json:"amount"`
}

// Allocation is the result of one allocation run. Positions are sorted
// descending by dollar amount; zero-weight candidates are dropped.
type Allocation struct {
	Positions     []Position      `json:"positions"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	Requested     decimal.Decimal `json:"requested"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsEmpty reports whether the allocation holds no positions. An empty
// allocation is a legitimate outcome, not an error.
func (a Allocation) IsEmpty() bool {
	return len(a.Positions) == 0
}

// TotalWeight sums position weights over the allocated subset.
func (a Allocation) TotalWeight() float64 {
	total := 0.0
	for _, p := range a.Positions {
		total += p.Weight
	}
	return total
}
