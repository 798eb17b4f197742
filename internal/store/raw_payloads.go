package store

import (
	"time"
)

// SaveRawPayload archives an upstream API response so odd analysis
// results can be traced back to exactly what the provider returned.
func (s *Store) SaveRawPayload(source, url string, body []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO raw_payloads (source, url, body, fetched_at)
		VALUES (?, ?, ?, ?)
	`, source, url, string(body), time.Now().UTC())
	return err
}

// CleanupRawPayloads deletes archived payloads older than the given
// number of days and returns how many were removed.
func (s *Store) CleanupRawPayloads(retentionDays int) (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM raw_payloads
		WHERE fetched_at < DATE('now', '-' || ? || ' days')
	`, retentionDays)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CountRawPayloads reports how many payloads are archived.
func (s *Store) CountRawPayloads() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM raw_payloads").Scan(&n)
	return n, err
}
