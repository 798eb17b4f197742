package models

import (
	"database/sql"
	"time"
)

// RawRecord is a provider-shaped daily record before normalization.
// Numeric fields are pointers so "absent" and "zero" stay distinct;
// providers also use -999 as an in-band missing sentinel.
type RawRecord struct {
	Date        string   `json:"date"`
	TempC       *float64 `json:"temp_c"`
	TempMaxC    *float64 `json:"temp_max_c"`
	TempMinC    *float64 `json:"temp_min_c"`
	PrecipMM    *float64 `json:"precip_mm"`
	WindMS      *float64 `json:"wind_ms"`
	HumidityPct *float64 `json:"humidity_pct"`
	PressureKPa *float64 `json:"pressure_kpa"`
}

// DailyRecord is a normalized historical day. Invalid fields mean the
// provider had no measurement, never a zero reading.
type DailyRecord struct {
	Date        time.Time
	TempC       sql.NullFloat64
	TempMaxC    sql.NullFloat64
	TempMinC    sql.NullFloat64
	PrecipMM    sql.NullFloat64
	WindMS      sql.NullFloat64
	HumidityPct sql.NullFloat64
	PressureKPa sql.NullFloat64
}

type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// ActivityProfile holds the comfort thresholds an activity is scored
// against. Wind limits are in km/h; history wind is m/s and converted
// at comparison time.
type ActivityProfile struct {
	Name           string  `json:"name"`
	MaxRainMM      float64 `json:"max_rain_mm"`
	IdealTempMinC  float64 `json:"ideal_temp_min_c"`
	IdealTempMaxC  float64 `json:"ideal_temp_max_c"`
	MaxWindKMH     float64 `json:"max_wind_kmh"`
	MaxHumidityPct float64 `json:"max_humidity_pct"`
}

// FieldStats summarizes one weather field over the similar-date set.
// Defaulted is set when no valid samples existed and a stand-in mean
// was substituted.
type FieldStats struct {
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Samples   int     `json:"samples"`
	Defaulted bool    `json:"defaulted,omitempty"`
}

// AggregatedConditions is the per-date climatology built from similar
// historical dates.
type AggregatedConditions struct {
	TempC       FieldStats `json:"temp_c"`
	PrecipMM    FieldStats `json:"precip_mm"`
	WindMS      FieldStats `json:"wind_ms"`
	HumidityPct FieldStats `json:"humidity_pct"`
	TempStdDevC float64    `json:"temp_stddev_c"`
	SimilarDays int        `json:"similar_days"`
	YearsOfData int        `json:"years_of_data"`
}

// Risk is a threshold-crossing frequency over the similar set,
// expressed 0..100 with a coarse level attached.
type Risk struct {
	Probability float64 `json:"probability"`
	Level       string  `json:"level"` // "low", "medium", "high"
}

// Risk condition names produced by the evaluator.
const (
	RiskVeryHot    = "very_hot"
	RiskVeryCold   = "very_cold"
	RiskHeavyRain  = "heavy_rain"
	RiskStrongWind = "strong_wind"
	RiskIdeal      = "ideal_conditions"
	RiskDry        = "dry_weather"
)

// DayAnalysis is the full verdict for one candidate date.
type DayAnalysis struct {
	Date           string               `json:"date"` // YYYY-MM-DD
	Conditions     AggregatedConditions `json:"conditions"`
	Risks          map[string]Risk      `json:"risks"`
	Score          float64              `json:"suitability_score"`
	Confidence     float64              `json:"confidence"`
	Tier           string               `json:"tier"`
	Recommendation string               `json:"recommendation"`
	Advice         []string             `json:"advice,omitempty"`
	FallbackUsed   bool                 `json:"fallback_used,omitempty"`
}

// WindowInsights summarizes the whole window for quick reading.
type WindowInsights struct {
	ExcellentDays  int     `json:"excellent_days"`
	GoodDays       int     `json:"good_days"`
	FairDays       int     `json:"fair_days"`
	RiskyDays      int     `json:"risky_days"`
	BestDay        string  `json:"best_day,omitempty"`
	WorstDay       string  `json:"worst_day,omitempty"`
	AverageScore   float64 `json:"average_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	Recommendation string  `json:"recommendation"`
}

// WindowReport is the ranked answer for a date window. Success is
// false when the window could not be analyzed at all, with Error
// carrying the reason; partial trouble shows up as fallback days
// instead.
type WindowReport struct {
	Success            bool           `json:"success"`
	Location           Location       `json:"location"`
	DateFrom           string         `json:"date_from"`
	DateTo             string         `json:"date_to"`
	Activity           string         `json:"activity"`
	Days               []DayAnalysis  `json:"all_windows"`
	TopRecommendations []DayAnalysis  `json:"top_recommendations"`
	Insights           WindowInsights `json:"insights"`
	Error              string         `json:"error,omitempty"`
}
