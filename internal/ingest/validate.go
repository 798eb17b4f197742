package ingest

import (
	"github.com/lox/paradecast/internal/models"
)

const (
	FlagTempOutOfRange     = "temp_out_of_range"
	FlagHumidityInvalid    = "humidity_invalid"
	FlagWindSpeedUnlikely  = "wind_speed_unlikely"
	FlagPressureOutOfRange = "pressure_out_of_range"
	FlagPrecipNegative     = "precip_negative"
)

// ValidateRecord flags physically implausible values in an archive
// record. Flagged records are still cached; the flags exist so bad
// upstream data shows up in logs instead of silently skewing scores.
func ValidateRecord(rec *models.DailyRecord) []string {
	var flags []string

	if rec.TempC.Valid {
		if rec.TempC.Float64 < -90 || rec.TempC.Float64 > 60 {
			flags = append(flags, FlagTempOutOfRange)
		}
	}
	if rec.TempMaxC.Valid && rec.TempMinC.Valid {
		if rec.TempMaxC.Float64 < rec.TempMinC.Float64 {
			flags = append(flags, FlagTempOutOfRange)
		}
	}

	if rec.HumidityPct.Valid {
		if rec.HumidityPct.Float64 < 0 || rec.HumidityPct.Float64 > 100 {
			flags = append(flags, FlagHumidityInvalid)
		}
	}

	if rec.WindMS.Valid {
		if rec.WindMS.Float64 < 0 || rec.WindMS.Float64 > 120 {
			flags = append(flags, FlagWindSpeedUnlikely)
		}
	}

	if rec.PressureKPa.Valid {
		if rec.PressureKPa.Float64 < 50 || rec.PressureKPa.Float64 > 110 {
			flags = append(flags, FlagPressureOutOfRange)
		}
	}

	if rec.PrecipMM.Valid && rec.PrecipMM.Float64 < 0 {
		flags = append(flags, FlagPrecipNegative)
	}

	return flags
}
