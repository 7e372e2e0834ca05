// Package marketdata adapts external market-data sources to the engine's
// snapshot contract.
package marketdata

import (
	"context"

	"github.com/wonny/folio/internal/contracts"
)

// Provider supplies per-ticker snapshots and benchmark history. The rest
// of the system depends only on this contract, never on a concrete source.
type Provider interface {
	GetSnapshot(ctx context.Context, symbol string) (contracts.TickerSnapshot, error)
	GetBenchmark(ctx context.Context, period string) (contracts.PriceSeries, error)
}
