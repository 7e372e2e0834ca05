// Package allocation builds constrained mean-variance portfolios from
// scored candidates.
package allocation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/logger"
)

// fallbackTopN is how many top-scored candidates survive when the score
// threshold filters out everyone.
const fallbackTopN = 3

// Conviction scaling of expected returns: a score of 0 halves the
// projected return, a score of 1 keeps all of it.
const (
	convictionFloor = 0.5
	convictionSlope = 0.5
)

// Blend of history versus projection in the expected-return estimate.
const (
	historicalWeight = 0.3
	projectionWeight = 0.7
)

// Candidate is one scored ticker offered to the allocator.
type Candidate struct {
	Result         contracts.ScoreResult
	Price          float64
	EarningsGrowth float64
	History        contracts.PriceSeries
}

// Allocator turns scored candidates into a weighted allocation.
type Allocator struct {
	estimator *Estimator
	logger    *logger.Logger
}

// NewAllocator creates an allocator using the given covariance estimator.
func NewAllocator(estimator *Estimator, log *logger.Logger) *Allocator {
	return &Allocator{
		estimator: estimator,
		logger:    log,
	}
}

// Allocate solves for the constrained portfolio. An empty candidate set
// yields an empty, valid allocation. Infeasible constraint configurations
// (max weight times candidate count below 1) return
// contracts.ErrDegenerateConstraints.
func (a *Allocator) Allocate(ctx context.Context, candidates []Candidate, req contracts.AllocationRequest) (contracts.Allocation, error) {
	if err := validateRequest(req); err != nil {
		return contracts.Allocation{}, err
	}

	allocation := contracts.Allocation{
		Requested: req.InvestmentAmount,
		CreatedAt: time.Now().UTC(),
	}

	selected := filterByScore(candidates, req.MinScore)
	if len(selected) == 0 {
		// Absence of investable tickers is a legitimate outcome.
		return allocation, nil
	}

	if req.MaxWeightPerStock*float64(len(selected)) < 1.0 {
		return contracts.Allocation{}, fmt.Errorf(
			"%w: max weight %.2f across %d candidates cannot reach a full budget",
			contracts.ErrDegenerateConstraints, req.MaxWeightPerStock, len(selected))
	}

	mu := make([]float64, len(selected))
	tickers := make([]string, len(selected))
	histories := make(map[string]contracts.PriceSeries, len(selected))
	for i, c := range selected {
		mu[i] = expectedReturn(c)
		tickers[i] = c.Result.Symbol
		histories[c.Result.Symbol] = c.History
	}

	sigma := a.estimator.Estimate(tickers, histories)

	weights, err := solveMeanVariance(mu, sigma, req.RiskAversion, req.MaxWeightPerStock)
	if err != nil {
		return contracts.Allocation{}, err
	}

	for i, c := range selected {
		if weights[i] <= 0 {
			continue
		}

		// Truncate so the invested total never exceeds the budget.
		amount := req.InvestmentAmount.Mul(decimal.NewFromFloat(weights[i])).RoundDown(2)
		if amount.IsZero() {
			continue
		}

		allocation.Positions = append(allocation.Positions, contracts.Position{
			Symbol: c.Result.Symbol,
			Price:  c.Price,
			Weight: weights[i],
			Amount: amount,
		})
		allocation.TotalInvested = allocation.TotalInvested.Add(amount)
	}

	sort.Slice(allocation.Positions, func(i, j int) bool {
		return allocation.Positions[i].Amount.GreaterThan(allocation.Positions[j].Amount)
	})

	a.logger.WithFields(map[string]interface{}{
		"candidates": len(candidates),
		"selected":   len(selected),
		"positions":  len(allocation.Positions),
		"invested":   allocation.TotalInvested.String(),
	}).Info("Portfolio allocation completed")

	return allocation, nil
}

// filterByScore keeps candidates at or above the threshold. When none
// clear it, the top fallbackTopN by score survive instead so a too-strict
// threshold never empties a non-empty candidate set.
func filterByScore(candidates []Candidate, minScore float64) []Candidate {
	var selected []Candidate
	for _, c := range candidates {
		if c.Result.Score >= minScore {
			selected = append(selected, c)
		}
	}
	if len(selected) > 0 || len(candidates) == 0 {
		return selected
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Result.Score > sorted[j].Result.Score
	})

	if len(sorted) > fallbackTopN {
		sorted = sorted[:fallbackTopN]
	}
	return sorted
}

// expectedReturn blends historical and projected returns, scaled by
// conviction in the candidate's score.
func expectedReturn(c Candidate) float64 {
	blended := historicalWeight*c.Result.Returns.Annualized + projectionWeight*c.EarningsGrowth
	return blended * (convictionFloor + convictionSlope*c.Result.Score)
}

func validateRequest(req contracts.AllocationRequest) error {
	if req.MaxWeightPerStock <= 0 || req.MaxWeightPerStock > 1 {
		return fmt.Errorf("%w: max weight per stock must be in (0, 1], got %v",
			contracts.ErrDegenerateConstraints, req.MaxWeightPerStock)
	}
	if req.RiskAversion < 0 {
		return fmt.Errorf("%w: risk aversion must be non-negative, got %v",
			contracts.ErrDegenerateConstraints, req.RiskAversion)
	}
	if req.InvestmentAmount.IsNegative() {
		return fmt.Errorf("%w: investment amount must be non-negative, got %s",
			contracts.ErrDegenerateConstraints, req.InvestmentAmount)
	}
	return nil
}
