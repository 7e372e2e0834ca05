package marketdata

import (
	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/internal/rating"
)

// DefaultContext returns a market context with the documented default
// substitutions for the risk-free rate and sector averages. Used when the
// benchmark fetch fails; a data problem must degrade scores, not abort a
// batch.
func DefaultContext() contracts.MarketContext {
	return contracts.MarketContext{
		RiskFreeRate: rating.DefaultRiskFreeRate,
		SectorPE:     rating.DefaultSectorPE,
		SectorDE:     rating.DefaultSectorDE,
	}
}

// EmptySnapshot returns a snapshot with no data for a ticker whose fetch
// failed. Scoring it produces a neutral, default-driven score.
func EmptySnapshot(symbol string) contracts.TickerSnapshot {
	return contracts.TickerSnapshot{
		Symbol:  symbol,
		History: contracts.PriceSeries{Symbol: symbol},
	}
}
