package allocation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// penaltyWeight drives the quadratic penalty on the budget constraint.
const penaltyWeight = 1000.0

// solveMeanVariance maximizes w'mu - 0.5*riskAversion*(w'Sigma*w) subject
// to sum(w) = 1 and 0 <= w_i <= maxWeight. The box constraint is enforced
// by projection inside the objective, the budget constraint by a quadratic
// penalty; the result is projected and renormalized once more at the end.
func solveMeanVariance(mu []float64, sigma *mat.SymDense, riskAversion, maxWeight float64) ([]float64, error) {
	n := len(mu)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		// Feasibility was checked upstream; the only solution is w = 1.
		return []float64{1.0}, nil
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectToBox(x, maxWeight)

			var portfolioReturn float64
			for i := 0; i < n; i++ {
				portfolioReturn += mu[i] * w[i]
			}

			var portfolioVariance float64
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					portfolioVariance += w[i] * w[j] * sigma.At(i, j)
				}
			}

			obj := -(portfolioReturn - 0.5*riskAversion*portfolioVariance)

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}
			obj += penaltyWeight * (sum - 1.0) * (sum - 1.0)

			return obj
		},
		Grad: func(grad, x []float64) {
			w := projectToBox(x, maxWeight)

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}

			for i := 0; i < n; i++ {
				// The projection makes w constant in x_i outside the box,
				// so the objective is locally flat in a clamped coordinate.
				if x[i] < 0 || x[i] > maxWeight {
					grad[i] = 0
					continue
				}
				grad[i] = -mu[i] + 2*penaltyWeight*(sum-1.0)
				for j := 0; j < n; j++ {
					grad[i] += riskAversion * sigma.At(i, j) * w[j]
				}
			}
		},
	}

	initial := make([]float64, n)
	for i := range initial {
		initial[i] = 1.0 / float64(n)
	}

	result, err := optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.BFGS{})
	if err != nil || !converged(result.Status) {
		result, err = optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.NelderMead{})
		if err != nil {
			return nil, fmt.Errorf("optimization failed: %w", err)
		}
		if !converged(result.Status) {
			return nil, fmt.Errorf("optimization did not converge: status=%v", result.Status)
		}
	}

	// Project the final point and renormalize onto the simplex slice.
	weights := projectToBox(result.X, maxWeight)
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("optimization produced a zero-weight portfolio")
	}
	for i := range weights {
		weights[i] = math.Max(0, weights[i]/sum)
	}

	return weights, nil
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence, optimize.FunctionThreshold:
		return true
	default:
		return false
	}
}

func projectToBox(x []float64, maxWeight float64) []float64 {
	proj := make([]float64, len(x))
	for i := range x {
		proj[i] = math.Max(0, math.Min(maxWeight, x[i]))
	}
	return proj
}
