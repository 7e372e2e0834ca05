package rating

import (
	"math"

	"github.com/wonny/folio/internal/contracts"
)

// minBetaObservations is the minimum number of aligned return pairs for a
// meaningful regression; below it beta defaults to 1.0.
const minBetaObservations = 10

// calculateBeta regresses stock returns on benchmark returns. Series are
// aligned on their trailing overlap. Beta defaults to 1.0 when the
// benchmark variance is 0 or fewer than minBetaObservations pairs align.
func calculateBeta(stockReturns, marketReturns []float64) contracts.BetaMetrics {
	n := len(stockReturns)
	if len(marketReturns) < n {
		n = len(marketReturns)
	}

	metrics := contracts.BetaMetrics{Beta: 1.0}
	if n < minBetaObservations {
		return metrics
	}

	stock := stockReturns[len(stockReturns)-n:]
	market := marketReturns[len(marketReturns)-n:]

	meanStock := mean(stock)
	meanMarket := mean(market)

	var covSum, varMarket, varStock float64
	for i := 0; i < n; i++ {
		ds := stock[i] - meanStock
		dm := market[i] - meanMarket
		covSum += ds * dm
		varMarket += dm * dm
		varStock += ds * ds
	}

	if varMarket == 0 {
		return metrics
	}

	beta := covSum / varMarket
	metrics.Beta = beta

	if varStock != 0 {
		corr := covSum / math.Sqrt(varMarket*varStock)
		metrics.RSquared = corr * corr
	}

	metrics.Alpha = meanStock*tradingDaysPerYear - beta*meanMarket*tradingDaysPerYear

	// Tracking error: std-dev of the residual return stream, annualized.
	residuals := make([]float64, n)
	for i := 0; i < n; i++ {
		residuals[i] = stock[i] - beta*market[i]
	}
	metrics.TrackingError = stdDev(residuals) * math.Sqrt(tradingDaysPerYear)

	return metrics
}
