package engine

import (
	"database/sql"
	"math"

	"github.com/lox/paradecast/internal/models"
)

// Stand-in means used when a field has no valid samples at all.
// Humidity gets a mid-range guess; rain and wind assume calm.
const (
	defaultHumidityPct = 50.0
	defaultPrecipMM    = 0.0
	defaultWindMS      = 0.0
)

// Aggregate computes per-field climatology over a similar-date set.
// Invalid samples are skipped per field rather than dragging means
// toward zero. A set with no valid temperature readings cannot be
// scored and returns InsufficientDataError.
func Aggregate(date string, similar []models.DailyRecord) (models.AggregatedConditions, error) {
	temps := collect(similar, func(r models.DailyRecord) sql.NullFloat64 { return r.TempC })
	if len(temps) == 0 {
		return models.AggregatedConditions{}, &InsufficientDataError{Date: date, Samples: 0}
	}

	agg := models.AggregatedConditions{
		TempC:       stats(temps),
		PrecipMM:    statsOrDefault(collect(similar, func(r models.DailyRecord) sql.NullFloat64 { return r.PrecipMM }), defaultPrecipMM),
		WindMS:      statsOrDefault(collect(similar, func(r models.DailyRecord) sql.NullFloat64 { return r.WindMS }), defaultWindMS),
		HumidityPct: statsOrDefault(collect(similar, func(r models.DailyRecord) sql.NullFloat64 { return r.HumidityPct }), defaultHumidityPct),
		TempStdDevC: stdDev(temps),
		SimilarDays: len(similar),
		YearsOfData: distinctYears(similar),
	}
	return agg, nil
}

func collect(records []models.DailyRecord, field func(models.DailyRecord) sql.NullFloat64) []float64 {
	var vals []float64
	for _, r := range records {
		if v := field(r); v.Valid {
			vals = append(vals, v.Float64)
		}
	}
	return vals
}

func stats(vals []float64) models.FieldStats {
	s := models.FieldStats{Min: vals[0], Max: vals[0], Samples: len(vals)}
	var sum float64
	for _, v := range vals {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = round1(sum / float64(len(vals)))
	s.Min = round1(s.Min)
	s.Max = round1(s.Max)
	return s
}

func statsOrDefault(vals []float64, def float64) models.FieldStats {
	if len(vals) == 0 {
		return models.FieldStats{Mean: def, Min: def, Max: def, Defaulted: true}
	}
	return stats(vals)
}

func stdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(vals)))
}

func distinctYears(records []models.DailyRecord) int {
	years := make(map[int]struct{}, len(records))
	for _, r := range records {
		years[r.Date.Year()] = struct{}{}
	}
	return len(years)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
