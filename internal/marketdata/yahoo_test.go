package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/logger"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1704153600, 1704240000, 1704326400, 1704412800],
      "indicators": {
        "quote": [{
          "close": [185.64, null, 184.25, 181.91],
          "volume": [82488700, null, 58414500, 62303300]
        }]
      }
    }],
    "error": null
  }
}`

const errorFixture = `{
  "chart": {
    "result": null,
    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
  }
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *YahooProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Market: config.MarketConfig{
			BaseURL:        server.URL,
			Benchmark:      "^GSPC",
			LookbackPeriod: "2y",
			Timeout:        5 * time.Second,
			RequestsPerSec: 100,
		},
	}
	return NewYahooProvider(cfg, logger.NewNop())
}

func TestGetSnapshot_ParsesChart(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "2y", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartFixture)
	})

	snapshot, err := provider.GetSnapshot(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", snapshot.Symbol)
	// The null bar is dropped.
	require.Len(t, snapshot.History.Prices, 3)
	assert.Equal(t, 185.64, snapshot.History.Prices[0])
	assert.Equal(t, 181.91, snapshot.History.Prices[2])
	require.Len(t, snapshot.History.Dates, 3)
	require.NotNil(t, snapshot.Technicals.CurrentPrice)
	assert.Equal(t, 181.91, *snapshot.Technicals.CurrentPrice)
	// Too little history for a 50-day MA.
	assert.Nil(t, snapshot.Technicals.MA50)
}

func TestGetSnapshot_APIError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, errorFixture)
	})

	_, err := provider.GetSnapshot(context.Background(), "GONE")
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrDataUnavailable)
}

func TestGetSnapshot_HTTPFailure(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := provider.GetSnapshot(context.Background(), "AAPL")
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrDataUnavailable)
}

func TestGetBenchmark_UsesConfiguredSymbol(t *testing.T) {
	var requestedPath string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		fmt.Fprint(w, chartFixture)
	})

	series, err := provider.GetBenchmark(context.Background(), "1y")
	require.NoError(t, err)
	assert.Contains(t, requestedPath, "^GSPC")
	assert.Equal(t, "^GSPC", series.Symbol)
	assert.Len(t, series.Prices, 3)
}

func TestGetBenchmark_EmptyPeriodUsesLookback(t *testing.T) {
	var requestedRange string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		requestedRange = r.URL.Query().Get("range")
		fmt.Fprint(w, chartFixture)
	})

	_, err := provider.GetBenchmark(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2y", requestedRange)
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 1.5, toFloat(1.5))
	assert.Equal(t, 2.0, toFloat(2))
	assert.Equal(t, 0.0, toFloat(nil))
	assert.Equal(t, 0.0, toFloat("n/a"))
}
