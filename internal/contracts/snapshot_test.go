package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceSeries_Returns(t *testing.T) {
	s := PriceSeries{
		Symbol: "AAPL",
		Prices: []float64{100, 110, 99},
	}

	returns := s.Returns()
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestPriceSeries_Returns_TooShort(t *testing.T) {
	assert.Nil(t, PriceSeries{Prices: []float64{100}}.Returns())
	assert.Nil(t, PriceSeries{}.Returns())
}

func TestPriceSeries_Returns_ZeroPrice(t *testing.T) {
	s := PriceSeries{Prices: []float64{0, 50}}
	returns := s.Returns()
	require.Len(t, returns, 1)
	assert.Zero(t, returns[0])
}

func TestPriceSeries_Last(t *testing.T) {
	assert.Equal(t, 99.0, PriceSeries{Prices: []float64{100, 99}}.Last())
	assert.Zero(t, PriceSeries{}.Last())
}
