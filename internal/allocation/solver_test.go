package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSolveMeanVariance_WeightsOnSimplex(t *testing.T) {
	mu := []float64{0.10, 0.08, 0.06}
	sigma := mat.NewSymDense(3, []float64{
		0.06, 0.01, 0.00,
		0.01, 0.05, 0.01,
		0.00, 0.01, 0.04,
	})

	weights, err := solveMeanVariance(mu, sigma, 2.0, 0.6)
	require.NoError(t, err)
	require.Len(t, weights, 3)

	sum := 0.0
	for _, w := range weights {
		assert.GreaterOrEqual(t, w, 0.0)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestSolveMeanVariance_PrefersHigherReturnAtZeroRiskAversion(t *testing.T) {
	// With no variance penalty the solver should pile onto the best
	// asset up to its cap.
	mu := []float64{0.20, 0.02, 0.02}
	sigma := mat.NewSymDense(3, []float64{
		0.04, 0.00, 0.00,
		0.00, 0.04, 0.00,
		0.00, 0.00, 0.04,
	})

	weights, err := solveMeanVariance(mu, sigma, 0.0, 0.6)
	require.NoError(t, err)
	assert.Greater(t, weights[0], weights[1])
	assert.Greater(t, weights[0], weights[2])
}

func TestSolveMeanVariance_BindingCaps(t *testing.T) {
	// Identical assets with the cap exactly tight: every weight sits at
	// the cap and the budget still closes.
	mu := []float64{0.08, 0.08, 0.08, 0.08}
	sigma := mat.NewSymDense(4, []float64{
		0.04, 0.00, 0.00, 0.00,
		0.00, 0.04, 0.00, 0.00,
		0.00, 0.00, 0.04, 0.00,
		0.00, 0.00, 0.00, 0.04,
	})

	weights, err := solveMeanVariance(mu, sigma, 2.0, 0.25)
	require.NoError(t, err)
	require.Len(t, weights, 4)

	sum := 0.0
	for _, w := range weights {
		assert.LessOrEqual(t, w, 0.25+1e-6)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestSolveMeanVariance_SingleAsset(t *testing.T) {
	sigma := mat.NewSymDense(1, []float64{0.04})
	weights, err := solveMeanVariance([]float64{0.10}, sigma, 2.0, 1.0)
	require.NoError(t, err)
	require.Len(t, weights, 1)
	assert.Equal(t, 1.0, weights[0])
}

func TestSolveMeanVariance_Empty(t *testing.T) {
	weights, err := solveMeanVariance(nil, nil, 2.0, 0.5)
	require.NoError(t, err)
	assert.Nil(t, weights)
}

func TestProjectToBox(t *testing.T) {
	got := projectToBox([]float64{-0.2, 0.3, 0.9}, 0.5)
	assert.Equal(t, []float64{0, 0.3, 0.5}, got)
}
