package rating

import (
	"math"

	"github.com/wonny/folio/internal/contracts"
)

// Volatility assessment thresholds (annualized).
const (
	volLowCeiling      = 0.15
	volModerateCeiling = 0.25
	volHighCeiling     = 0.40
)

// calculateVolatility computes annualized volatility, Sharpe ratio, maximum
// drawdown and downside deviation from a daily return series. Fewer than 2
// returns yields zeros and an "Insufficient Data" assessment.
func calculateVolatility(returns []float64) contracts.VolatilityMetrics {
	if len(returns) < 2 {
		return contracts.VolatilityMetrics{Assessment: "Insufficient Data"}
	}

	meanDaily := mean(returns)
	annualizedVol := stdDev(returns) * math.Sqrt(tradingDaysPerYear)
	annualizedRet := meanDaily * tradingDaysPerYear

	sharpe := 0.0
	if annualizedVol != 0 {
		sharpe = annualizedRet / annualizedVol
	}

	return contracts.VolatilityMetrics{
		Annualized:        annualizedVol,
		Sharpe:            sharpe,
		MaxDrawdown:       maxDrawdown(returns),
		DownsideDeviation: downsideDeviation(returns),
		Assessment:        assessVolatility(annualizedVol),
	}
}

// maxDrawdown is the largest peak-to-trough decline of the cumulative
// return path, reported as a negative fraction.
func maxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	worst := 0.0

	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		drawdown := cumulative/peak - 1
		if drawdown < worst {
			worst = drawdown
		}
	}

	return worst
}

// downsideDeviation is the annualized std-dev of negative returns only.
func downsideDeviation(returns []float64) float64 {
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}

	if len(negative) < 2 {
		return 0
	}

	return stdDev(negative) * math.Sqrt(tradingDaysPerYear)
}

func assessVolatility(annualized float64) string {
	switch {
	case annualized < volLowCeiling:
		return "Low Volatility"
	case annualized < volModerateCeiling:
		return "Moderate Volatility"
	case annualized < volHighCeiling:
		return "High Volatility"
	default:
		return "Very High Volatility"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// stdDev is the sample standard deviation.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(values)-1))
}
