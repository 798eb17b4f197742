package store

import (
	"database/sql"
	"time"

	"github.com/lox/paradecast/internal/models"
)

// Store caches normalized daily history records per point location so
// repeat analyses of nearby windows skip the upstream archive.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// coordKey rounds a coordinate to the cache grid. POWER serves data on
// a half-degree grid, so two decimals is already finer than the data.
func coordKey(v float64) float64 {
	return float64(int64(v*100+0.5*sign(v))) / 100
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

const dateFormat = "2006-01-02"

// UpsertDailyRecords writes a batch of records for one location,
// replacing any rows already cached for the same dates.
func (s *Store) UpsertDailyRecords(lat, lon float64, records []models.DailyRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO daily_records (latitude, longitude, date, temp, temp_max, temp_min, precip, wind_speed, humidity, pressure, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(latitude, longitude, date) DO UPDATE SET
			temp = excluded.temp,
			temp_max = excluded.temp_max,
			temp_min = excluded.temp_min,
			precip = excluded.precip,
			wind_speed = excluded.wind_speed,
			humidity = excluded.humidity,
			pressure = excluded.pressure,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range records {
		if _, err := stmt.Exec(
			coordKey(lat), coordKey(lon), r.Date.Format(dateFormat),
			r.TempC, r.TempMaxC, r.TempMinC, r.PrecipMM, r.WindMS, r.HumidityPct, r.PressureKPa,
			now,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetDailyRecords returns cached records for a location between two
// dates inclusive, ordered by date.
func (s *Store) GetDailyRecords(lat, lon float64, from, to time.Time) ([]models.DailyRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, temp, temp_max, temp_min, precip, wind_speed, humidity, pressure
		FROM daily_records
		WHERE latitude = ? AND longitude = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, coordKey(lat), coordKey(lon), from.Format(dateFormat), to.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DailyRecord
	for rows.Next() {
		var r models.DailyRecord
		var date string
		if err := rows.Scan(&date, &r.TempC, &r.TempMaxC, &r.TempMinC, &r.PrecipMM, &r.WindMS, &r.HumidityPct, &r.PressureKPa); err != nil {
			return nil, err
		}
		r.Date, err = time.Parse(dateFormat, date)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// HasWindow reports whether a fetch window for this location was
// already completed and recorded.
func (s *Store) HasWindow(lat, lon float64, from, to time.Time) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM fetch_windows
		WHERE latitude = ? AND longitude = ? AND start_date <= ? AND end_date >= ?
	`, coordKey(lat), coordKey(lon), from.Format(dateFormat), to.Format(dateFormat)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkWindow records that a fetch window was completed for a location.
func (s *Store) MarkWindow(lat, lon float64, from, to time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO fetch_windows (latitude, longitude, start_date, end_date, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(latitude, longitude, start_date, end_date) DO UPDATE SET
			fetched_at = excluded.fetched_at
	`, coordKey(lat), coordKey(lon), from.Format(dateFormat), to.Format(dateFormat), time.Now().UTC())
	return err
}

// CountRecords reports the cache size, used by the health endpoint.
func (s *Store) CountRecords() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM daily_records").Scan(&n)
	return n, err
}
