package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/httputil"
	"github.com/wonny/folio/pkg/logger"
)

// YahooProvider fetches price history from the Yahoo Finance chart API.
// The chart endpoint carries no fundamentals or growth estimates; those
// snapshot fields stay empty and the scoring engine substitutes its
// documented defaults.
type YahooProvider struct {
	client    *httputil.Client
	baseURL   string
	benchmark string
	lookback  string
	logger    *logger.Logger
}

// NewYahooProvider creates a Yahoo Finance provider.
func NewYahooProvider(cfg *config.Config, log *logger.Logger) *YahooProvider {
	client := httputil.New(log, cfg.Market.Timeout).
		WithRateLimit(cfg.Market.RequestsPerSec).
		WithUserAgent("Mozilla/5.0")

	return &YahooProvider{
		client:    client,
		baseURL:   cfg.Market.BaseURL,
		benchmark: cfg.Market.Benchmark,
		lookback:  cfg.Market.LookbackPeriod,
		logger:    log,
	}
}

// chartResponse is the wire shape of the Yahoo chart API. Quote arrays use
// interface{} because null bars appear on holidays.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetSnapshot fetches the price history for one ticker and derives its
// technical indicators.
func (p *YahooProvider) GetSnapshot(ctx context.Context, symbol string) (contracts.TickerSnapshot, error) {
	dates, closes, volumes, err := p.fetchChart(ctx, symbol, p.lookback)
	if err != nil {
		return contracts.TickerSnapshot{}, fmt.Errorf("%w: %s: %v", contracts.ErrDataUnavailable, symbol, err)
	}

	return contracts.TickerSnapshot{
		Symbol: symbol,
		History: contracts.PriceSeries{
			Symbol: symbol,
			Dates:  dates,
			Prices: closes,
		},
		Technicals: computeIndicators(closes, volumes),
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// GetBenchmark fetches the benchmark index history for the given period.
func (p *YahooProvider) GetBenchmark(ctx context.Context, period string) (contracts.PriceSeries, error) {
	if period == "" {
		period = p.lookback
	}

	dates, closes, _, err := p.fetchChart(ctx, p.benchmark, period)
	if err != nil {
		return contracts.PriceSeries{}, fmt.Errorf("%w: benchmark %s: %v", contracts.ErrDataUnavailable, p.benchmark, err)
	}

	return contracts.PriceSeries{
		Symbol: p.benchmark,
		Dates:  dates,
		Prices: closes,
	}, nil
}

// fetchChart pulls daily bars for a symbol, skipping null bars.
func (p *YahooProvider) fetchChart(ctx context.Context, symbol, rng string) ([]time.Time, []float64, []float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		p.baseURL, url.PathEscape(symbol), url.QueryEscape(rng))

	var chart chartResponse
	if err := p.client.GetJSON(ctx, u, &chart); err != nil {
		return nil, nil, nil, err
	}

	if chart.Chart.Error != nil {
		return nil, nil, nil, fmt.Errorf("chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil, nil, fmt.Errorf("no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil, nil, fmt.Errorf("no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	dates := make([]time.Time, 0, len(result.Timestamp))
	closes := make([]float64, 0, len(result.Timestamp))
	volumes := make([]float64, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue // null bar (holiday etc.)
		}
		dates = append(dates, time.Unix(ts, 0).UTC())
		closes = append(closes, c)
		if i < len(quote.Volume) {
			volumes = append(volumes, toFloat(quote.Volume[i]))
		} else {
			volumes = append(volumes, 0)
		}
	}

	p.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"range":  rng,
		"bars":   len(closes),
	}).Debug("Fetched chart data")

	return dates, closes, volumes, nil
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
