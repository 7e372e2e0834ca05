// Package jobs holds the scheduled background jobs: cache warming for the
// benchmark series and the configured watchlist.
package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/pkg/logger"
)

// BenchmarkRefreshJob warms the benchmark series before US market open so
// the first scoring request of the day doesn't pay the fetch.
type BenchmarkRefreshJob struct {
	provider marketdata.Provider
	logger   *logger.Logger
}

// NewBenchmarkRefreshJob creates the benchmark refresh job.
func NewBenchmarkRefreshJob(provider marketdata.Provider, log *logger.Logger) *BenchmarkRefreshJob {
	return &BenchmarkRefreshJob{provider: provider, logger: log}
}

// Name returns the job name.
func (j *BenchmarkRefreshJob) Name() string { return "benchmark_refresh" }

// Schedule runs weekdays at 13:00 UTC, before the US market opens.
func (j *BenchmarkRefreshJob) Schedule() string { return "0 0 13 * * 1-5" }

// Run fetches the benchmark series through the provider, which populates
// the cache when one is configured.
func (j *BenchmarkRefreshJob) Run(ctx context.Context) error {
	series, err := j.provider.GetBenchmark(ctx, "")
	if err != nil {
		return fmt.Errorf("benchmark refresh failed: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbol": series.Symbol,
		"bars":   len(series.Prices),
	}).Info("Benchmark series refreshed")

	return nil
}

// WatchlistWarmJob pre-fetches snapshots for a fixed watchlist. Individual
// fetch failures are tolerated; the job fails only when nothing loads.
type WatchlistWarmJob struct {
	provider marketdata.Provider
	symbols  []string
	logger   *logger.Logger
}

// NewWatchlistWarmJob creates the watchlist warming job.
func NewWatchlistWarmJob(provider marketdata.Provider, symbols []string, log *logger.Logger) *WatchlistWarmJob {
	return &WatchlistWarmJob{provider: provider, symbols: symbols, logger: log}
}

// Name returns the job name.
func (j *WatchlistWarmJob) Name() string { return "watchlist_warm" }

// Schedule runs hourly during and around US trading hours, weekdays.
func (j *WatchlistWarmJob) Schedule() string { return "0 15 13-21 * * 1-5" }

// Run fetches a snapshot per watchlist symbol.
func (j *WatchlistWarmJob) Run(ctx context.Context) error {
	if len(j.symbols) == 0 {
		return nil
	}

	warmed := 0
	for _, symbol := range j.symbols {
		if _, err := j.provider.GetSnapshot(ctx, symbol); err != nil {
			j.logger.WithError(err).WithField("symbol", symbol).
				Warn("Watchlist snapshot fetch failed")
			continue
		}
		warmed++
	}

	if warmed == 0 {
		return fmt.Errorf("watchlist warm failed for all %d symbols", len(j.symbols))
	}

	j.logger.WithFields(map[string]interface{}{
		"warmed": warmed,
		"total":  len(j.symbols),
	}).Info("Watchlist snapshots warmed")

	return nil
}
