package engine

import "github.com/lox/paradecast/internal/models"

// Confidence estimates how trustworthy an analysis is, 0..100. Three
// terms: sample volume, temperature consistency across the similar
// set, and the span of distinct years contributing.
func Confidence(agg models.AggregatedConditions) float64 {
	volume := min100(float64(agg.TempC.Samples) * 10)
	consistency := clamp(100-agg.TempStdDevC*5, 0, 100)
	span := min100(float64(agg.YearsOfData) * 15)

	return round1(0.4*volume + 0.4*consistency + 0.2*span)
}

func min100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
