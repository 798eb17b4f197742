package engine

import "github.com/lox/paradecast/internal/models"

// Penalty weights. Rain ruins more plans than heat, heat more than
// wind.
const (
	rainWeight = 0.9
	tempWeight = 0.8
	windWeight = 0.6
)

// Score folds the risk probabilities into a single 0..100 suitability
// number. Temperature risk is whichever extreme is likelier. Windows
// that are usually ideal, or at least usually dry, earn a small bonus;
// the result is clamped so stacked penalties and bonuses stay in
// range.
func Score(risks map[string]models.Risk) float64 {
	tempRisk := risks[models.RiskVeryHot].Probability
	if cold := risks[models.RiskVeryCold].Probability; cold > tempRisk {
		tempRisk = cold
	}

	score := 100 -
		risks[models.RiskHeavyRain].Probability*rainWeight -
		tempRisk*tempWeight -
		risks[models.RiskStrongWind].Probability*windWeight

	switch {
	case risks[models.RiskIdeal].Probability > 50:
		score += 10
	case risks[models.RiskDry].Probability > 50:
		score += 5
	}

	return round1(clamp(score, 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
