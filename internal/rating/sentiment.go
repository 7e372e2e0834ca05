package rating

import "github.com/wonny/folio/internal/contracts"

// RSI bounds for the sentiment signal.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// scoreSentiment averages up to five technical signals, each in [0,1].
// A signal whose inputs are missing is excluded from the average rather
// than defaulted; zero available signals yields 0.
func scoreSentiment(t contracts.TechnicalIndicators) float64 {
	var total float64
	var count int

	if t.CurrentPrice != nil && t.MA50 != nil && *t.MA50 != 0 {
		total += aboveSignal(*t.CurrentPrice, *t.MA50)
		count++
	}

	if t.CurrentPrice != nil && t.MA200 != nil && *t.MA200 != 0 {
		total += aboveSignal(*t.CurrentPrice, *t.MA200)
		count++
	}

	if t.RSI != nil {
		total += rsiSignal(*t.RSI)
		count++
	}

	if t.MACD != nil && t.MACDSignal != nil {
		total += aboveSignal(*t.MACD, *t.MACDSignal)
		count++
	}

	if t.Volume != nil && t.AvgVolume != nil && *t.AvgVolume != 0 {
		total += aboveSignal(*t.Volume, *t.AvgVolume)
		count++
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func aboveSignal(value, reference float64) float64 {
	if value > reference {
		return 1.0
	}
	return 0.0
}

// rsiSignal rewards a healthy mid-range RSI, treats oversold as a partial
// opportunity and overbought as a warning.
func rsiSignal(rsi float64) float64 {
	switch {
	case rsi > rsiOverbought:
		return 0.0
	case rsi < rsiOversold:
		return 0.5
	default:
		return 1.0
	}
}
