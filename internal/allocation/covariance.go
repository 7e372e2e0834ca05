package allocation

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/logger"
)

const tradingDaysPerYear = 252

// Fallback covariance entries for tickers with unavailable history:
// variance 0.04 is roughly 20% annualized vol, off-diagonal 0.02 is
// roughly 0.5 correlation at that vol. The matrix stays complete for the
// requested ticker set no matter how patchy the data is.
const (
	fallbackVariance   = 0.04
	fallbackCovariance = 0.02
)

// minOverlap is the minimum number of aligned return observations for an
// empirical covariance entry.
const minOverlap = 2

// Estimator builds annualized covariance matrices of daily returns.
type Estimator struct {
	logger *logger.Logger
}

// NewEstimator creates a covariance estimator.
func NewEstimator(log *logger.Logger) *Estimator {
	return &Estimator{logger: log}
}

// Estimate returns the annualized covariance matrix for the ticker set in
// the given order. Histories missing from the map, or too short to yield
// two returns, get the fallback row and column.
func (e *Estimator) Estimate(tickers []string, histories map[string]contracts.PriceSeries) *mat.SymDense {
	n := len(tickers)
	if n == 0 {
		// gonum panics on zero-sized matrices.
		return nil
	}
	sigma := mat.NewSymDense(n, nil)

	returns := make([][]float64, n)
	usable := 0
	for i, ticker := range tickers {
		if history, ok := histories[ticker]; ok {
			returns[i] = history.Returns()
		}
		if len(returns[i]) >= minOverlap {
			usable++
		} else {
			returns[i] = nil
		}
	}

	if usable < n {
		e.logger.WithFields(map[string]interface{}{
			"tickers": n,
			"usable":  usable,
		}).Warn("Using fallback covariance for tickers without history")
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sigma.SetSym(i, j, e.entry(returns[i], returns[j], i == j))
		}
	}

	return sigma
}

// entry computes one annualized covariance entry, falling back when either
// series is unusable or the trailing overlap is too short.
func (e *Estimator) entry(a, b []float64, diagonal bool) float64 {
	if a == nil || b == nil {
		if diagonal {
			return fallbackVariance
		}
		return fallbackCovariance
	}

	if diagonal {
		return stat.Variance(a, nil) * tradingDaysPerYear
	}

	overlap := len(a)
	if len(b) < overlap {
		overlap = len(b)
	}
	if overlap < minOverlap {
		return fallbackCovariance
	}

	// Align on the trailing overlap.
	return stat.Covariance(a[len(a)-overlap:], b[len(b)-overlap:], nil) * tradingDaysPerYear
}
