package allocation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/logger"
)

func newTestAllocator() *Allocator {
	log := logger.NewNop()
	return NewAllocator(NewEstimator(log), log)
}

func candidate(symbol string, score, annualizedReturn, earningsGrowth, price float64, history contracts.PriceSeries) Candidate {
	return Candidate{
		Result: contracts.ScoreResult{
			Symbol:  symbol,
			Score:   score,
			Returns: contracts.ReturnMetrics{Annualized: annualizedReturn},
		},
		Price:          price,
		EarningsGrowth: earningsGrowth,
		History:        history,
	}
}

func defaultRequest() contracts.AllocationRequest {
	return contracts.AllocationRequest{
		InvestmentAmount:  decimal.NewFromInt(10000),
		MinScore:          0.5,
		RiskAversion:      2.0,
		MaxWeightPerStock: 0.6,
		Profile:           contracts.RiskMedium,
	}
}

func TestAllocate_EmptyCandidateSet(t *testing.T) {
	a := newTestAllocator()

	got, err := a.Allocate(context.Background(), nil, defaultRequest())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.True(t, got.TotalInvested.IsZero())
}

func TestAllocate_ScoreFilter(t *testing.T) {
	candidates := []Candidate{
		candidate("A", 0.9, 0.10, 0.12, 150, contracts.PriceSeries{}),
		candidate("B", 0.8, 0.08, 0.10, 80, contracts.PriceSeries{}),
		candidate("C", 0.1, 0.02, 0.01, 20, contracts.PriceSeries{}),
	}

	// Only A clears 0.85; the top-3 fallback must not engage.
	selected := filterByScore(candidates, 0.85)
	require.Len(t, selected, 1)
	assert.Equal(t, "A", selected[0].Result.Symbol)
}

func TestFilterByScore_FallbackTop3(t *testing.T) {
	candidates := []Candidate{
		candidate("A", 0.4, 0, 0, 1, contracts.PriceSeries{}),
		candidate("B", 0.3, 0, 0, 1, contracts.PriceSeries{}),
		candidate("C", 0.2, 0, 0, 1, contracts.PriceSeries{}),
		candidate("D", 0.1, 0, 0, 1, contracts.PriceSeries{}),
	}

	selected := filterByScore(candidates, 0.9)
	require.Len(t, selected, 3)
	assert.Equal(t, "A", selected[0].Result.Symbol)
	assert.Equal(t, "B", selected[1].Result.Symbol)
	assert.Equal(t, "C", selected[2].Result.Symbol)
}

func TestFilterByScore_FallbackSmallerSet(t *testing.T) {
	candidates := []Candidate{
		candidate("A", 0.4, 0, 0, 1, contracts.PriceSeries{}),
	}
	selected := filterByScore(candidates, 0.9)
	require.Len(t, selected, 1)
}

func TestAllocate_DegenerateConstraints(t *testing.T) {
	a := newTestAllocator()

	req := defaultRequest()
	req.MaxWeightPerStock = 0.3
	req.MinScore = 0.5

	// A single candidate capped at 30% cannot absorb 100% of the budget.
	candidates := []Candidate{
		candidate("ONLY", 0.9, 0.10, 0.12, 100, contracts.PriceSeries{}),
	}

	_, err := a.Allocate(context.Background(), candidates, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrDegenerateConstraints)
}

func TestAllocate_SingleCandidateFullWeight(t *testing.T) {
	a := newTestAllocator()

	req := defaultRequest()
	req.MaxWeightPerStock = 1.0

	candidates := []Candidate{
		candidate("ONLY", 0.9, 0.10, 0.12, 100, contracts.PriceSeries{}),
	}

	got, err := a.Allocate(context.Background(), candidates, req)
	require.NoError(t, err)
	require.Len(t, got.Positions, 1)
	assert.InDelta(t, 1.0, got.Positions[0].Weight, 1e-9)
	assert.True(t, got.TotalInvested.Equal(decimal.NewFromInt(10000)))
}

func TestAllocate_InvalidRequest(t *testing.T) {
	a := newTestAllocator()
	candidates := []Candidate{
		candidate("A", 0.9, 0.10, 0.12, 100, contracts.PriceSeries{}),
	}

	for name, mutate := range map[string]func(*contracts.AllocationRequest){
		"zero max weight":       func(r *contracts.AllocationRequest) { r.MaxWeightPerStock = 0 },
		"max weight above one":  func(r *contracts.AllocationRequest) { r.MaxWeightPerStock = 1.5 },
		"negative risk":         func(r *contracts.AllocationRequest) { r.RiskAversion = -1 },
		"negative investment":   func(r *contracts.AllocationRequest) { r.InvestmentAmount = decimal.NewFromInt(-5) },
	} {
		t.Run(name, func(t *testing.T) {
			req := defaultRequest()
			mutate(&req)
			_, err := a.Allocate(context.Background(), candidates, req)
			assert.ErrorIs(t, err, contracts.ErrDegenerateConstraints)
		})
	}
}

func TestAllocate_BudgetRoundTrip(t *testing.T) {
	a := newTestAllocator()

	req := defaultRequest()
	req.MinScore = 0.0
	req.MaxWeightPerStock = 0.8

	histories := anticorrelatedHistories()
	candidates := []Candidate{
		candidate("A", 0.8, 0.10, 0.10, 120, histories["A"]),
		candidate("B", 0.7, 0.10, 0.10, 90, histories["B"]),
		candidate("C", 0.6, 0.09, 0.08, 60, histories["C"]),
	}

	got, err := a.Allocate(context.Background(), candidates, req)
	require.NoError(t, err)
	require.NotEmpty(t, got.Positions)

	assert.True(t, got.TotalInvested.LessThanOrEqual(req.InvestmentAmount),
		"invested %s exceeds budget", got.TotalInvested)

	// Rounding aside, the full budget should be deployed.
	diff := req.InvestmentAmount.Sub(got.TotalInvested).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(1)), "left %s unallocated", diff)

	// Sorted descending by amount.
	for i := 1; i < len(got.Positions); i++ {
		assert.True(t, got.Positions[i-1].Amount.GreaterThanOrEqual(got.Positions[i].Amount))
	}
}

// anticorrelatedHistories builds A and B moving exactly opposite each
// other and C as an uncorrelated, more volatile third asset.
func anticorrelatedHistories() map[string]contracts.PriceSeries {
	n := 80
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	a[0], b[0], c[0] = 100, 100, 100

	for i := 1; i < n; i++ {
		step := 0.02
		if i%2 == 0 {
			step = -step
		}
		a[i] = a[i-1] * (1 + step)
		b[i] = b[i-1] * (1 - step)

		wild := 0.06
		if i%3 == 0 {
			wild = -0.05
		}
		c[i] = c[i-1] * (1 + wild)
	}

	return map[string]contracts.PriceSeries{
		"A": {Symbol: "A", Prices: a},
		"B": {Symbol: "B", Prices: b},
		"C": {Symbol: "C", Prices: c},
	}
}

func TestAllocate_AntiCorrelatedPairDominates(t *testing.T) {
	a := newTestAllocator()

	req := defaultRequest()
	req.MinScore = 0.0
	req.RiskAversion = 3.0
	req.MaxWeightPerStock = 0.5

	histories := anticorrelatedHistories()

	// Equal expected returns across the board: only the covariance
	// structure differentiates the candidates.
	candidates := []Candidate{
		candidate("A", 0.8, 0.10, 0.10, 100, histories["A"]),
		candidate("B", 0.8, 0.10, 0.10, 100, histories["B"]),
		candidate("C", 0.8, 0.10, 0.10, 100, histories["C"]),
	}

	got, err := a.Allocate(context.Background(), candidates, req)
	require.NoError(t, err)

	weights := make(map[string]float64)
	for _, p := range got.Positions {
		weights[p.Symbol] = p.Weight
	}

	// The anti-correlated pair hedges out; a risk-averse optimizer must
	// give A+B more than the naive equal-weight 2/3.
	combined := weights["A"] + weights["B"]
	assert.Greater(t, combined, 2.0/3.0,
		"anti-correlated pair got %.3f combined weight", combined)
}

func TestExpectedReturn_ConvictionScaling(t *testing.T) {
	low := candidate("X", 0.0, 0.10, 0.10, 1, contracts.PriceSeries{})
	high := candidate("X", 1.0, 0.10, 0.10, 1, contracts.PriceSeries{})

	// blended = 0.3*0.10 + 0.7*0.10 = 0.10
	assert.InDelta(t, 0.05, expectedReturn(low), 1e-12)
	assert.InDelta(t, 0.10, expectedReturn(high), 1e-12)
}
