package marketdata

import (
	"context"
	"time"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/redis"
)

// CachedProvider decorates a Provider with a Redis snapshot cache. With
// Redis disabled every call passes straight through.
type CachedProvider struct {
	inner Provider
	cache *redis.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps a provider with caching.
func NewCachedProvider(inner Provider, cache *redis.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// GetSnapshot serves from cache when possible.
func (p *CachedProvider) GetSnapshot(ctx context.Context, symbol string) (contracts.TickerSnapshot, error) {
	var snapshot contracts.TickerSnapshot
	err := p.cache.GetOrSet(ctx, redis.SnapshotKey(symbol), &snapshot, p.ttl, func() (interface{}, error) {
		return p.inner.GetSnapshot(ctx, symbol)
	})
	return snapshot, err
}

// GetBenchmark serves from cache when possible.
func (p *CachedProvider) GetBenchmark(ctx context.Context, period string) (contracts.PriceSeries, error) {
	var series contracts.PriceSeries
	err := p.cache.GetOrSet(ctx, redis.HistoryKey("benchmark", period), &series, p.ttl, func() (interface{}, error) {
		return p.inner.GetBenchmark(ctx, period)
	})
	return series, err
}
