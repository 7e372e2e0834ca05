package rating

import "github.com/wonny/folio/internal/contracts"

// Default substitutions for absent fundamental and market fields. Every
// missing optional value goes through this table and nowhere else.
const (
	DefaultPERatio      = 20.0
	DefaultDERatio      = 1.0
	DefaultROE          = 0.15
	DefaultFCFYield     = 0.05
	DefaultProfitMargin = 0.15
	DefaultRiskFreeRate = 0.04
	DefaultSectorPE     = 20.0
	DefaultSectorDE     = 1.2
)

// Step-function score levels.
var bucketScores = [6]float64{1.0, 0.8, 0.6, 0.4, 0.2, 0.0}

var bucketLabels = [6]string{"Excellent", "Very Good", "Good", "Fair", "Weak", "Poor"}

// scoreFundamentals maps the five ratios through their step functions and
// combines them with the profile's sub-weights.
func scoreFundamentals(f contracts.Fundamentals, market contracts.MarketContext, w contracts.ModelWeights) contracts.FundamentalScores {
	pe := orDefault(f.PERatio, DefaultPERatio)
	de := orDefault(f.DERatio, DefaultDERatio)
	roe := orDefault(f.ROE, DefaultROE)
	fcf := orDefault(f.FCFYield, DefaultFCFYield)
	margin := orDefault(f.ProfitMargin, DefaultProfitMargin)

	sectorPE := market.SectorPE
	if sectorPE <= 0 {
		sectorPE = DefaultSectorPE
	}
	sectorDE := market.SectorDE
	if sectorDE <= 0 {
		sectorDE = DefaultSectorDE
	}

	scores := contracts.FundamentalScores{
		PE:           scorePERatio(pe, sectorPE),
		DE:           scoreRelativeRatio(de, sectorDE),
		ROE:          scoreAbsolute(roe, [5]float64{0.25, 0.20, 0.15, 0.10, 0.05}),
		FCFYield:     scoreAbsolute(fcf, [5]float64{0.10, 0.08, 0.05, 0.03, 0.01}),
		ProfitMargin: scoreAbsolute(margin, [5]float64{0.20, 0.15, 0.10, 0.05, 0.02}),
	}

	scores.Composite = w.W1*scores.PE.Score +
		w.W2*scores.DE.Score +
		w.W3*scores.ROE.Score +
		w.W4*scores.FCFYield.Score +
		w.W5*scores.ProfitMargin.Score

	return scores
}

// scorePERatio buckets P/E against the sector average. A non-positive P/E
// means negative or zero earnings, not cheapness, so it scores 0 outright.
func scorePERatio(pe, sectorAvg float64) contracts.RatioScore {
	if pe <= 0 {
		return contracts.RatioScore{Raw: pe, Score: 0, Label: "Poor"}
	}
	return scoreRelativeRatio(pe, sectorAvg)
}

// scoreRelativeRatio buckets a ratio against its sector average. Lower is
// better for both P/E and D/E. Negative values score 0 outright.
func scoreRelativeRatio(value, sectorAvg float64) contracts.RatioScore {
	if value < 0 || sectorAvg <= 0 {
		return contracts.RatioScore{Raw: value, Score: 0, Label: "Poor"}
	}

	ratio := value / sectorAvg
	thresholds := [5]float64{0.7, 0.9, 1.1, 1.3, 1.5}

	for i, limit := range thresholds {
		if ratio < limit {
			return contracts.RatioScore{Raw: value, Score: bucketScores[i], Label: bucketLabels[i]}
		}
	}
	return contracts.RatioScore{Raw: value, Score: bucketScores[5], Label: bucketLabels[5]}
}

// scoreAbsolute buckets a ratio against fixed thresholds. Higher is better.
func scoreAbsolute(value float64, thresholds [5]float64) contracts.RatioScore {
	for i, floor := range thresholds {
		if value >= floor {
			return contracts.RatioScore{Raw: value, Score: bucketScores[i], Label: bucketLabels[i]}
		}
	}
	return contracts.RatioScore{Raw: value, Score: bucketScores[5], Label: bucketLabels[5]}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
