package engine

import (
	"time"

	"github.com/lox/paradecast/internal/models"
)

// DefaultTolerance is the day-of-year window either side of the target
// date that counts as climatologically similar.
const DefaultTolerance = 5

// daysInYear keeps day-of-year arithmetic on a fixed circle. Leap days
// shift things by at most one day, well inside any useful tolerance.
const daysInYear = 365

// SimilarDates selects history records whose day-of-year falls within
// tolerance days of the target's, wrapping across the year boundary so
// early-January targets pick up late-December history. The year of
// each history record is ignored; input order is preserved.
func SimilarDates(target time.Time, history []models.DailyRecord, tolerance int) []models.DailyRecord {
	if tolerance < 0 {
		tolerance = DefaultTolerance
	}
	targetDOY := target.YearDay()
	var out []models.DailyRecord
	for _, rec := range history {
		if circularDayDistance(targetDOY, rec.Date.YearDay()) <= tolerance {
			out = append(out, rec)
		}
	}
	return out
}

// circularDayDistance is the shortest distance between two days of the
// year walking either direction around the calendar.
func circularDayDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if wrapped := daysInYear - d; wrapped < d {
		return wrapped
	}
	return d
}
