// Package advisor orchestrates the scoring and allocation pipeline:
// market data in, scores, recommendations and allocations out.
package advisor

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/wonny/folio/internal/allocation"
	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/internal/rating"
	"github.com/wonny/folio/internal/recommend"
	"github.com/wonny/folio/pkg/logger"
)

// defaultWorkers bounds the scoring fan-out. Scoring is CPU-light; the
// real limit is the upstream data source's tolerance.
const defaultWorkers = 4

// Advisor runs the full pipeline. Scoring different tickers shares no
// mutable state, so the fan-out needs no locking beyond result collection.
type Advisor struct {
	provider    marketdata.Provider
	engine      *rating.Engine
	allocator   *allocation.Allocator
	recommender *recommend.Recommender
	repo        *allocation.Repository // nil when no database is configured
	weightsHash string
	workers     int
	logger      *logger.Logger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithWorkers sets the scoring fan-out width.
func WithWorkers(n int) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithRepository enables persistence of allocation runs.
func WithRepository(repo *allocation.Repository, weightsHash string) Option {
	return func(a *Advisor) {
		a.repo = repo
		a.weightsHash = weightsHash
	}
}

// New creates an advisor.
func New(provider marketdata.Provider, engine *rating.Engine, allocator *allocation.Allocator, recommender *recommend.Recommender, log *logger.Logger, opts ...Option) *Advisor {
	a := &Advisor{
		provider:    provider,
		engine:      engine,
		allocator:   allocator,
		recommender: recommender,
		workers:     defaultWorkers,
		logger:      log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// scored pairs a snapshot with its score so the allocator can reuse the
// price history without a second fetch.
type scored struct {
	snapshot contracts.TickerSnapshot
	result   contracts.ScoreResult
}

// ScoreTickers scores every ticker under the profile, sorted by score
// descending. Per-ticker fetch failures degrade to default-driven scores;
// the batch never aborts for one bad ticker.
func (a *Advisor) ScoreTickers(ctx context.Context, symbols []string, profile contracts.RiskProfile) ([]contracts.ScoreResult, error) {
	batch, err := a.scoreBatch(ctx, symbols, profile)
	if err != nil {
		return nil, err
	}

	results := make([]contracts.ScoreResult, len(batch))
	for i, s := range batch {
		results[i] = s.result
	}
	return results, nil
}

// Recommend scores one ticker and maps the result to an action.
func (a *Advisor) Recommend(ctx context.Context, symbol string, profile contracts.RiskProfile) (contracts.Recommendation, error) {
	batch, err := a.scoreBatch(ctx, []string{symbol}, profile)
	if err != nil {
		return contracts.Recommendation{}, err
	}
	return a.recommender.Recommend(batch[0].result, profile), nil
}

// BuildPortfolio scores the tickers and allocates the budget across the
// best of them. When a repository is configured the run is persisted;
// persistence failures are logged, not propagated.
func (a *Advisor) BuildPortfolio(ctx context.Context, symbols []string, req contracts.AllocationRequest) (contracts.Allocation, error) {
	batch, err := a.scoreBatch(ctx, symbols, req.Profile)
	if err != nil {
		return contracts.Allocation{}, err
	}

	candidates := make([]allocation.Candidate, len(batch))
	for i, s := range batch {
		candidates[i] = allocation.Candidate{
			Result:         s.result,
			Price:          currentPrice(s.snapshot),
			EarningsGrowth: s.snapshot.Growth.EarningsGrowth,
			History:        s.snapshot.History,
		}
	}

	result, err := a.allocator.Allocate(ctx, candidates, req)
	if err != nil {
		return contracts.Allocation{}, err
	}

	if a.repo != nil {
		if _, err := a.repo.SaveRun(ctx, req, result, a.weightsHash); err != nil {
			a.logger.WithError(err).Warn("Failed to persist allocation run")
		}
	}

	return result, nil
}

// scoreBatch fetches the market context once, then scores all symbols in
// parallel and sorts the batch by score descending.
func (a *Advisor) scoreBatch(ctx context.Context, symbols []string, profile contracts.RiskProfile) ([]scored, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	market := a.marketContext(ctx)

	jobs := make(chan int)
	results := make([]scored, len(symbols))

	var wg sync.WaitGroup
	workers := a.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	failures := make([]bool, len(symbols))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				snapshot, err := a.provider.GetSnapshot(ctx, symbols[i])
				if err != nil {
					a.logger.WithError(err).WithField("symbol", symbols[i]).
						Warn("Snapshot fetch failed, scoring with defaults")
					snapshot = marketdata.EmptySnapshot(symbols[i])
					failures[i] = true
				}
				results[i] = scored{
					snapshot: snapshot,
					result:   a.engine.Score(snapshot, market, profile),
				}
			}
		}()
	}

	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	allFailed := true
	for _, failed := range failures {
		if !failed {
			allFailed = false
			break
		}
	}
	if allFailed && len(market.Benchmark.Prices) == 0 {
		return nil, contracts.ErrNoUsableData
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].result.Score > results[j].result.Score
	})

	return results, nil
}

// marketContext builds the shared context for one batch, degrading to the
// documented defaults when the benchmark is unavailable.
func (a *Advisor) marketContext(ctx context.Context) contracts.MarketContext {
	market := marketdata.DefaultContext()

	benchmark, err := a.provider.GetBenchmark(ctx, "")
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.logger.WithError(err).Warn("Benchmark fetch failed, using default market context")
		}
		return market
	}

	market.Benchmark = benchmark
	return market
}

func currentPrice(snapshot contracts.TickerSnapshot) float64 {
	if snapshot.Technicals.CurrentPrice != nil {
		return *snapshot.Technicals.CurrentPrice
	}
	return snapshot.History.Last()
}
