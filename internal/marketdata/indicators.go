package marketdata

import "github.com/wonny/folio/internal/contracts"

// Indicator windows, trading days.
const (
	maShortWindow   = 50
	maLongWindow    = 200
	rsiWindow       = 14
	macdFastWindow  = 12
	macdSlowWindow  = 26
	macdSignalSpan  = 9
	avgVolumeWindow = 20
)

// computeIndicators derives the technical indicator set from closing
// prices and volumes. Indicators whose window exceeds the available
// history stay nil and drop out of the sentiment average downstream.
func computeIndicators(closes, volumes []float64) contracts.TechnicalIndicators {
	var ind contracts.TechnicalIndicators

	if len(closes) == 0 {
		return ind
	}

	current := closes[len(closes)-1]
	ind.CurrentPrice = &current

	if ma := movingAverage(closes, maShortWindow); ma != nil {
		ind.MA50 = ma
	}
	if ma := movingAverage(closes, maLongWindow); ma != nil {
		ind.MA200 = ma
	}
	if rsi := relativeStrength(closes, rsiWindow); rsi != nil {
		ind.RSI = rsi
	}
	if macd, signal := macdLine(closes); macd != nil {
		ind.MACD = macd
		ind.MACDSignal = signal
	}

	if len(volumes) > 0 {
		latest := volumes[len(volumes)-1]
		ind.Volume = &latest
		if avg := movingAverage(volumes, avgVolumeWindow); avg != nil {
			ind.AvgVolume = avg
		}
	}

	return ind
}

// movingAverage is the simple average of the trailing window, nil when the
// series is shorter than the window.
func movingAverage(values []float64, window int) *float64 {
	if len(values) < window {
		return nil
	}

	sum := 0.0
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	avg := sum / float64(window)
	return &avg
}

// relativeStrength is Wilder's RSI over the trailing window.
func relativeStrength(closes []float64, window int) *float64 {
	if len(closes) < window+1 {
		return nil
	}

	var gains, losses float64
	start := len(closes) - window
	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	if losses == 0 {
		full := 100.0
		return &full
	}

	rs := gains / losses
	rsi := 100 - 100/(1+rs)
	return &rsi
}

// macdLine is the MACD (fast EMA minus slow EMA) and its signal line.
func macdLine(closes []float64) (*float64, *float64) {
	if len(closes) < macdSlowWindow+macdSignalSpan {
		return nil, nil
	}

	fast := emaSeries(closes, macdFastWindow)
	slow := emaSeries(closes, macdSlowWindow)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}

	signal := emaSeries(macd, macdSignalSpan)

	m := macd[len(macd)-1]
	s := signal[len(signal)-1]
	return &m, &s
}

// emaSeries computes the exponential moving average over the whole series,
// seeded with the first value.
func emaSeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	k := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}
