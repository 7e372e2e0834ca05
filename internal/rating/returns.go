package rating

import (
	"math"

	"github.com/wonny/folio/internal/contracts"
)

// tradingDaysPerYear is the annualization convention used throughout.
const tradingDaysPerYear = 252

// Trailing return windows in trading days.
const (
	windowOneMonth   = 21
	windowThreeMonth = 63
	windowOneYear    = 252
)

// calculateReturns computes annualized and trailing window returns from a
// price history. Fewer than 2 prices yields all zeros.
func calculateReturns(history contracts.PriceSeries) contracts.ReturnMetrics {
	prices := history.Prices
	if len(prices) < 2 {
		return contracts.ReturnMetrics{}
	}

	metrics := contracts.ReturnMetrics{
		OneMonth:   windowedReturn(prices, windowOneMonth),
		ThreeMonth: windowedReturn(prices, windowThreeMonth),
		OneYear:    windowedReturn(prices, windowOneYear),
	}

	if prices[0] != 0 {
		totalReturn := prices[len(prices)-1]/prices[0] - 1
		n := float64(len(prices))
		metrics.Annualized = math.Pow(1+totalReturn, tradingDaysPerYear/n) - 1
	}

	return metrics
}

// windowedReturn is the simple return over the trailing window, 0 when the
// history has fewer points than the window.
func windowedReturn(prices []float64, window int) float64 {
	if len(prices) < window {
		return 0
	}

	past := prices[len(prices)-window]
	if past == 0 {
		return 0
	}

	return prices[len(prices)-1]/past - 1
}
