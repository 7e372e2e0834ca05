package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSeries(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestComputeIndicators_Empty(t *testing.T) {
	ind := computeIndicators(nil, nil)
	assert.Nil(t, ind.CurrentPrice)
	assert.Nil(t, ind.MA50)
	assert.Nil(t, ind.RSI)
}

func TestComputeIndicators_ShortHistory(t *testing.T) {
	closes := []float64{100, 101, 102}
	volumes := []float64{1000, 1100, 1200}

	ind := computeIndicators(closes, volumes)

	require.NotNil(t, ind.CurrentPrice)
	assert.Equal(t, 102.0, *ind.CurrentPrice)
	require.NotNil(t, ind.Volume)
	assert.Equal(t, 1200.0, *ind.Volume)

	// Windows longer than the history stay nil.
	assert.Nil(t, ind.MA50)
	assert.Nil(t, ind.MA200)
	assert.Nil(t, ind.RSI)
	assert.Nil(t, ind.MACD)
	assert.Nil(t, ind.AvgVolume)
}

func TestComputeIndicators_FullHistory(t *testing.T) {
	closes := make([]float64, 250)
	volumes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + 0.1*float64(i)
		volumes[i] = 1e6
	}

	ind := computeIndicators(closes, volumes)

	require.NotNil(t, ind.MA50)
	require.NotNil(t, ind.MA200)
	require.NotNil(t, ind.RSI)
	require.NotNil(t, ind.MACD)
	require.NotNil(t, ind.MACDSignal)
	require.NotNil(t, ind.AvgVolume)

	// Rising series: price above both MAs, RSI pinned at 100.
	assert.Greater(t, *ind.CurrentPrice, *ind.MA50)
	assert.Greater(t, *ind.MA50, *ind.MA200)
	assert.Equal(t, 100.0, *ind.RSI)
	assert.Equal(t, 1e6, *ind.AvgVolume)
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	ma := movingAverage(values, 3)
	require.NotNil(t, ma)
	assert.Equal(t, 4.0, *ma) // (3+4+5)/3

	assert.Nil(t, movingAverage(values, 6))
}

func TestRelativeStrength_Balanced(t *testing.T) {
	// Alternating +1/-1 moves: gains equal losses, RSI = 50.
	closes := []float64{100}
	for i := 0; i < 20; i++ {
		last := closes[len(closes)-1]
		if i%2 == 0 {
			closes = append(closes, last+1)
		} else {
			closes = append(closes, last-1)
		}
	}

	rsi := relativeStrength(closes, rsiWindow)
	require.NotNil(t, rsi)
	assert.InDelta(t, 50.0, *rsi, 1e-9)
}

func TestRelativeStrength_AllLosses(t *testing.T) {
	closes := flatSeries(0, 0)
	for i := 0; i < 20; i++ {
		closes = append(closes, 100-float64(i))
	}

	rsi := relativeStrength(closes, rsiWindow)
	require.NotNil(t, rsi)
	assert.InDelta(t, 0.0, *rsi, 1e-9)
}

func TestMACDLine_FlatSeriesIsZero(t *testing.T) {
	closes := flatSeries(60, 100)

	macd, signal := macdLine(closes)
	require.NotNil(t, macd)
	require.NotNil(t, signal)
	assert.InDelta(t, 0.0, *macd, 1e-9)
	assert.InDelta(t, 0.0, *signal, 1e-9)
}
