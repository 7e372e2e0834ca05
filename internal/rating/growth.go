package rating

import "github.com/wonny/folio/internal/contracts"

// scoreGrowth buckets earnings and revenue growth against the industry
// growth rate and averages the two. The analyst-recommendation signal is
// carried in GrowthProjections but does not enter the composite.
func scoreGrowth(g contracts.GrowthProjections) contracts.GrowthScores {
	scores := contracts.GrowthScores{
		Earnings: scoreGrowthRate(g.EarningsGrowth, g.IndustryGrowth),
		Revenue:  scoreGrowthRate(g.RevenueGrowth, g.IndustryGrowth),
	}
	scores.Composite = (scores.Earnings + scores.Revenue) / 2
	return scores
}

// scoreGrowthRate buckets growth relative to the industry rate. Negative
// growth always scores 0. A non-positive industry rate makes the relative
// comparison meaningless, so any positive growth scores full marks there.
func scoreGrowthRate(growth, industry float64) float64 {
	if growth < 0 {
		return 0
	}

	if industry <= 0 {
		if growth > 0 {
			return 1.0
		}
		return 0
	}

	ratio := growth / industry
	switch {
	case ratio < 0.5:
		return 0.2
	case ratio < 0.9:
		return 0.4
	case ratio < 1.1:
		return 0.6
	case ratio < 1.5:
		return 0.8
	default:
		return 1.0
	}
}
