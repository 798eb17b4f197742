package power

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const sampleResponse = `{
	"properties": {
		"parameter": {
			"T2M": {"20240614": 21.3, "20240615": 22.5},
			"T2M_MAX": {"20240614": 26.0, "20240615": 27.1},
			"T2M_MIN": {"20240614": 15.2, "20240615": 16.0},
			"PRECTOTCORR": {"20240614": 0.4, "20240615": -999.0},
			"WS2M": {"20240614": 3.1, "20240615": 2.8},
			"RH2M": {"20240614": 58.0, "20240615": 61.5},
			"PS": {"20240614": 101.2, "20240615": 101.0}
		}
	}
}`

func dateRange(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	from, _ := time.Parse("2006-01-02", "2024-06-14")
	to, _ := time.Parse("2006-01-02", "2024-06-15")
	return from, to
}

func TestFetchDaily(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	from, to := dateRange(t)
	records, body, err := c.FetchDaily(context.Background(), -37.81, 144.96, from, to)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if len(body) == 0 {
		t.Error("expected raw body for archival")
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.Date != "2024-06-14" {
		t.Errorf("Date = %s, want 2024-06-14", first.Date)
	}
	if first.TempC == nil || *first.TempC != 21.3 {
		t.Errorf("TempC = %v, want 21.3", first.TempC)
	}

	// The archive sentinel must survive untouched for the normalizer.
	second := records[1]
	if second.PrecipMM == nil || *second.PrecipMM != -999.0 {
		t.Errorf("PrecipMM = %v, want -999 passed through", second.PrecipMM)
	}

	for _, want := range []string{"latitude=-37.8100", "longitude=144.9600", "start=20240614", "end=20240615", "community=RE"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestFetchDaily_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	from, to := dateRange(t)
	if _, _, err := c.FetchDaily(context.Background(), 0, 0, from, to); err != nil {
		t.Fatalf("FetchDaily after retry: %v", err)
	}
	if calls.Load() < 2 {
		t.Errorf("calls = %d, want at least 2", calls.Load())
	}
}

func TestFetchDaily_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	from, to := dateRange(t)
	if _, _, err := c.FetchDaily(context.Background(), 0, 0, from, to); err == nil {
		t.Fatal("expected error from 400 response")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retries on client errors)", calls.Load())
	}
}

func TestFetchDaily_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL)
	from, to := dateRange(t)
	if _, _, err := c.FetchDaily(ctx, 0, 0, from, to); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
