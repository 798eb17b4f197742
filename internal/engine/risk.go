package engine

import (
	"github.com/lox/paradecast/internal/models"
)

// Extreme-condition thresholds, independent of activity.
const (
	veryHotC    = 35.0
	veryColdC   = -15.0
	dryDayMaxMM = 1.0
)

// msToKMH converts stored wind speeds to the km/h profiles use.
const msToKMH = 3.6

// EvaluateRisks computes threshold-crossing frequencies over the
// similar set. The denominator is always the full similar-day count;
// a day with no reading for a field cannot cross that field's
// threshold, so missing data pushes probabilities toward zero rather
// than inventing crossings.
func EvaluateRisks(similar []models.DailyRecord, profile models.ActivityProfile) map[string]models.Risk {
	var hot, cold, rain, wind, ideal, dry int

	for _, r := range similar {
		if r.TempMaxC.Valid && r.TempMaxC.Float64 > veryHotC {
			hot++
		}
		if r.TempMinC.Valid && r.TempMinC.Float64 < veryColdC {
			cold++
		}
		if r.PrecipMM.Valid {
			if r.PrecipMM.Float64 > profile.MaxRainMM {
				rain++
			}
			if r.PrecipMM.Float64 < dryDayMaxMM {
				dry++
			}
		}
		if r.WindMS.Valid && r.WindMS.Float64*msToKMH > profile.MaxWindKMH {
			wind++
		}
		if r.TempC.Valid && isIdealDay(r, profile) {
			ideal++
		}
	}

	n := len(similar)
	return map[string]models.Risk{
		models.RiskVeryHot:    risk(hot, n),
		models.RiskVeryCold:   risk(cold, n),
		models.RiskHeavyRain:  risk(rain, n),
		models.RiskStrongWind: risk(wind, n),
		models.RiskIdeal:      risk(ideal, n),
		models.RiskDry:        risk(dry, n),
	}
}

// isIdealDay requires comfortable temperature plus rain and wind under
// the profile limits. Unmeasured rain or wind counts as calm.
func isIdealDay(r models.DailyRecord, p models.ActivityProfile) bool {
	if r.TempC.Float64 < p.IdealTempMinC || r.TempC.Float64 > p.IdealTempMaxC {
		return false
	}
	if r.PrecipMM.Valid && r.PrecipMM.Float64 > p.MaxRainMM {
		return false
	}
	if r.WindMS.Valid && r.WindMS.Float64*msToKMH > p.MaxWindKMH {
		return false
	}
	return true
}

func risk(crossings, samples int) models.Risk {
	var p float64
	if samples > 0 {
		p = round1(100 * float64(crossings) / float64(samples))
	}
	return models.Risk{Probability: p, Level: riskLevel(p)}
}

func riskLevel(p float64) string {
	switch {
	case p < 20:
		return "low"
	case p < 50:
		return "medium"
	default:
		return "high"
	}
}
