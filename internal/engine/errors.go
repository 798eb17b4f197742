package engine

import "fmt"

// ParseError reports a raw record field that could not be interpreted.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: invalid value %q", e.Field, e.Value)
}

// InsufficientDataError reports a date with too few valid samples to
// aggregate. Samples is the count of valid temperature readings found.
type InsufficientDataError struct {
	Date    string
	Samples int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d valid temperature samples", e.Date, e.Samples)
}

// EmptyHistoryError reports that no history exists for the location.
type EmptyHistoryError struct {
	Location string
}

func (e *EmptyHistoryError) Error() string {
	return fmt.Sprintf("no historical records for %s", e.Location)
}
