package engine

import (
	"database/sql"
	"time"

	"github.com/lox/paradecast/internal/models"
)

// Providers disagree on date layouts; these cover everything seen in
// the wild so far.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// missingSentinel is the in-band "no data" marker used by POWER and
// several other archives.
const missingSentinel = -999.0

// Physical plausibility bounds per field. Values outside these are
// treated the same as the sentinel: absent, never clamped or zeroed.
type fieldRange struct{ lo, hi float64 }

var (
	tempRange     = fieldRange{-90, 60}
	precipRange   = fieldRange{0, 10000}
	windRange     = fieldRange{0, 10000}
	humidityRange = fieldRange{0, 100}
	anyRange      = fieldRange{-1e18, 1e18}
)

// ParseDate tries each accepted layout in order.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Field: "date", Value: s}
}

// Normalize converts a raw provider record into a DailyRecord. Missing
// pointers, sentinel values and physically impossible readings all
// become invalid fields so downstream statistics never mistake "no
// reading" for an observed zero.
func Normalize(raw models.RawRecord) (models.DailyRecord, error) {
	date, err := ParseDate(raw.Date)
	if err != nil {
		return models.DailyRecord{}, err
	}
	return models.DailyRecord{
		Date:        date,
		TempC:       normField(raw.TempC, tempRange),
		TempMaxC:    normField(raw.TempMaxC, tempRange),
		TempMinC:    normField(raw.TempMinC, tempRange),
		PrecipMM:    normField(raw.PrecipMM, precipRange),
		WindMS:      normField(raw.WindMS, windRange),
		HumidityPct: normField(raw.HumidityPct, humidityRange),
		PressureKPa: normField(raw.PressureKPa, anyRange),
	}, nil
}

// NormalizeAll normalizes a batch, dropping records whose date cannot
// be parsed rather than failing the batch. The dropped count is
// returned for reporting.
func NormalizeAll(raws []models.RawRecord) ([]models.DailyRecord, int) {
	records := make([]models.DailyRecord, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func normField(v *float64, r fieldRange) sql.NullFloat64 {
	if v == nil || *v == missingSentinel || *v < r.lo || *v > r.hi {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
