package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/redis"
)

type stubProvider struct {
	snapshotCalls  int
	benchmarkCalls int
}

func (s *stubProvider) GetSnapshot(ctx context.Context, symbol string) (contracts.TickerSnapshot, error) {
	s.snapshotCalls++
	return contracts.TickerSnapshot{
		Symbol:  symbol,
		History: contracts.PriceSeries{Symbol: symbol, Prices: []float64{1, 2, 3}},
	}, nil
}

func (s *stubProvider) GetBenchmark(ctx context.Context, period string) (contracts.PriceSeries, error) {
	s.benchmarkCalls++
	return contracts.PriceSeries{Symbol: "^GSPC", Prices: []float64{100, 101}}, nil
}

func TestCachedProvider_PassThroughWhenRedisDisabled(t *testing.T) {
	client, err := redis.New(&config.Config{}) // Redis disabled
	require.NoError(t, err)

	stub := &stubProvider{}
	cached := NewCachedProvider(stub, redis.NewCache(client, "folio"), time.Minute)

	snapshot, err := cached.GetSnapshot(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", snapshot.Symbol)
	assert.Equal(t, []float64{1, 2, 3}, snapshot.History.Prices)

	// No cache behind it: every call reaches the inner provider.
	_, err = cached.GetSnapshot(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 2, stub.snapshotCalls)

	series, err := cached.GetBenchmark(context.Background(), "1y")
	require.NoError(t, err)
	assert.Equal(t, "^GSPC", series.Symbol)
	assert.Equal(t, 1, stub.benchmarkCalls)
}
