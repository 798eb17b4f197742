package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/paradecast/internal/engine"
	"github.com/lox/paradecast/internal/metrics"
	"github.com/lox/paradecast/internal/models"
	"github.com/lox/paradecast/internal/store"
)

const (
	// DefaultYears of history mined per analysis.
	DefaultYears = 10

	fetchConcurrency = 4
)

// Fetcher pulls raw daily records from an upstream archive.
type Fetcher interface {
	FetchDaily(ctx context.Context, lat, lon float64, from, to time.Time) ([]models.RawRecord, []byte, error)
}

// Service assembles the historical record set for a window analysis.
// Each past year's slice of the calendar around the requested window
// is served from the cache when possible and fetched upstream
// otherwise.
type Service struct {
	store     *store.Store
	fetcher   Fetcher
	years     int
	tolerance int
	logger    *log.Logger
}

func NewService(st *store.Store, fetcher Fetcher, years, tolerance int, logger *log.Logger) *Service {
	if years <= 0 {
		years = DefaultYears
	}
	if tolerance <= 0 {
		tolerance = engine.DefaultTolerance
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: st, fetcher: fetcher, years: years, tolerance: tolerance, logger: logger}
}

// History returns normalized records covering the requested window,
// padded by the similarity tolerance, for each of the configured past
// years. Records come back sorted by date.
func (s *Service) History(ctx context.Context, loc models.Location, from, to time.Time) ([]models.DailyRecord, error) {
	perYear := make([][]models.DailyRecord, s.years)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for offset := 1; offset <= s.years; offset++ {
		g.Go(func() error {
			start := from.AddDate(-offset, 0, -s.tolerance)
			end := to.AddDate(-offset, 0, s.tolerance)
			records, err := s.yearWindow(ctx, loc, start, end)
			if err != nil {
				return fmt.Errorf("history %d-%d: %w", start.Year(), end.Year(), err)
			}
			perYear[offset-1] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.DailyRecord
	for _, records := range perYear {
		all = append(all, records...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return all, nil
}

func (s *Service) yearWindow(ctx context.Context, loc models.Location, from, to time.Time) ([]models.DailyRecord, error) {
	cached, err := s.store.HasWindow(loc.Latitude, loc.Longitude, from, to)
	if err != nil {
		return nil, fmt.Errorf("check cache window: %w", err)
	}
	if cached {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		return s.store.GetDailyRecords(loc.Latitude, loc.Longitude, from, to)
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	raws, body, err := s.fetcher.FetchDaily(ctx, loc.Latitude, loc.Longitude, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch upstream: %w", err)
	}
	if err := s.store.SaveRawPayload("power", "daily", body); err != nil {
		s.logger.Printf("ingest: archive payload: %v", err)
	}

	records, dropped := engine.NormalizeAll(raws)
	if dropped > 0 {
		s.logger.Printf("ingest: dropped %d unparseable records at %.2f,%.2f", dropped, loc.Latitude, loc.Longitude)
	}
	for i := range records {
		if flags := ValidateRecord(&records[i]); len(flags) > 0 {
			s.logger.Printf("ingest: suspect record %s at %.2f,%.2f: %v",
				records[i].Date.Format("2006-01-02"), loc.Latitude, loc.Longitude, flags)
		}
	}

	if err := s.store.UpsertDailyRecords(loc.Latitude, loc.Longitude, records); err != nil {
		return nil, fmt.Errorf("cache records: %w", err)
	}
	if err := s.store.MarkWindow(loc.Latitude, loc.Longitude, from, to); err != nil {
		return nil, fmt.Errorf("mark window: %w", err)
	}
	metrics.RecordsIngested.WithLabelValues("power").Add(float64(len(records)))

	return records, nil
}
