package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/paradecast/internal/models"
)

const (
	// ISO date used everywhere in reports.
	dateFormat = "2006-01-02"

	// analyzeConcurrency bounds the per-date workers.
	analyzeConcurrency = 8

	topRecommendationCount = 3
)

// Request describes one window analysis.
type Request struct {
	Location  models.Location
	From      time.Time
	To        time.Time
	Activity  string
	Tolerance int // similar-date tolerance in days, 0 means DefaultTolerance

	// Thresholds overrides the built-in profile for the activity when
	// non-nil.
	Thresholds *models.ActivityProfile
}

// Engine runs window analyses over a prepared history.
type Engine struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{logger: logger}
}

// Analyze scores every date in the request window against the history.
// It almost never returns an error: bad windows and empty histories
// come back as unsuccessful reports, and dates that cannot be
// aggregated get a conservative fallback analysis. The only hard
// failure is context cancellation, which aborts the whole window.
func (e *Engine) Analyze(ctx context.Context, req Request, history []models.DailyRecord) (*models.WindowReport, error) {
	report := &models.WindowReport{
		Location: req.Location,
		DateFrom: req.From.Format(dateFormat),
		DateTo:   req.To.Format(dateFormat),
		Activity: ProfileFor(req.Activity).Name,
	}
	if req.Activity != "" {
		report.Activity = req.Activity
	}

	if req.To.Before(req.From) {
		report.Error = "date_to is before date_from"
		return report, nil
	}
	if len(history) == 0 {
		err := &EmptyHistoryError{Location: req.Location.Name}
		report.Error = err.Error()
		return report, nil
	}

	profile := ProfileFor(req.Activity)
	if req.Thresholds != nil {
		profile = *req.Thresholds
	}
	tolerance := req.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	dates := windowDates(req.From, req.To)
	days := make([]models.DayAnalysis, len(dates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(analyzeConcurrency)
	for i, date := range dates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			days[i] = e.analyzeDay(date, history, profile, tolerance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze window: %w", err)
	}

	ranked := Rank(days)
	report.Success = true
	report.Days = ranked
	report.TopRecommendations = TopRecommendations(ranked, topRecommendationCount)
	report.Insights = Insights(ranked)
	return report, nil
}

func (e *Engine) analyzeDay(date time.Time, history []models.DailyRecord, profile models.ActivityProfile, tolerance int) models.DayAnalysis {
	iso := date.Format(dateFormat)
	similar := SimilarDates(date, history, tolerance)

	agg, err := Aggregate(iso, similar)
	if err != nil {
		var insufficient *InsufficientDataError
		if errors.As(err, &insufficient) {
			e.logger.Printf("engine: %v, using fallback", err)
			return fallbackDay(iso)
		}
		e.logger.Printf("engine: aggregate %s: %v, using fallback", iso, err)
		return fallbackDay(iso)
	}

	risks := EvaluateRisks(similar, profile)
	score := Score(risks)
	return models.DayAnalysis{
		Date:           iso,
		Conditions:     agg,
		Risks:          risks,
		Score:          score,
		Confidence:     Confidence(agg),
		Tier:           Tier(score),
		Recommendation: recommendation(score),
		Advice:         Advice(risks),
	}
}

// fallbackDay is the conservative stand-in for a date with no usable
// history: temperate, lightly wet, neutral score, zero confidence.
func fallbackDay(iso string) models.DayAnalysis {
	return models.DayAnalysis{
		Date: iso,
		Conditions: models.AggregatedConditions{
			TempC:       models.FieldStats{Mean: 15, Min: 15, Max: 15, Defaulted: true},
			PrecipMM:    models.FieldStats{Mean: 5, Min: 5, Max: 5, Defaulted: true},
			WindMS:      models.FieldStats{Mean: 2.8, Min: 2.8, Max: 2.8, Defaulted: true},
			HumidityPct: models.FieldStats{Mean: 60, Min: 60, Max: 60, Defaulted: true},
		},
		Risks:          map[string]models.Risk{},
		Score:          50,
		Confidence:     0,
		Tier:           Tier(50),
		Recommendation: "No comparable history for this date - treat as an open question.",
		Advice:         []string{"Check a short-range forecast closer to the date."},
		FallbackUsed:   true,
	}
}

func windowDates(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
