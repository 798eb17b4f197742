package power

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/lox/paradecast/internal/httputil"
	"github.com/lox/paradecast/internal/metrics"
	"github.com/lox/paradecast/internal/models"
)

// DefaultBaseURL is the NASA POWER daily point endpoint.
const DefaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// parameters requested from POWER. T2M family is air temperature at
// 2m, PRECTOTCORR is bias-corrected precipitation, WS2M wind at 2m,
// RH2M relative humidity, PS surface pressure.
const parameters = "T2M,T2M_MAX,T2M_MIN,PRECTOTCORR,WS2M,RH2M,PS"

// Client fetches daily history from the POWER archive. Transient
// upstream failures are retried with exponential backoff; sustained
// failure trips a circuit breaker so a dead archive fails fast
// instead of stalling every analysis.
type Client struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  httputil.NewClient(),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "power",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type dailyResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// FetchDaily returns raw records for every day in [from..to] at a
// point, along with the raw response body for archival. Sentinel
// values from the archive are passed through untouched; normalization
// decides what counts as missing.
func (c *Client) FetchDaily(ctx context.Context, lat, lon float64, from, to time.Time) ([]models.RawRecord, []byte, error) {
	q := url.Values{}
	q.Set("parameters", parameters)
	q.Set("community", "RE")
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("start", from.Format("20060102"))
	q.Set("end", to.Format("20060102"))
	q.Set("format", "JSON")
	reqURL := c.baseURL + "?" + q.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, nil, err
	}

	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, nil, fmt.Errorf("unmarshal power response: %w", err)
	}

	records, err := recordsFromParameters(data.Properties.Parameter)
	if err != nil {
		return nil, nil, err
	}
	return records, body, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body []byte
		operation := func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			resp, err := c.client.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return backoff.Permanent(err)
				}
				return fmt.Errorf("fetch daily: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("upstream unavailable: status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return backoff.Permanent(fmt.Errorf("fetch daily: status %d: %s", resp.StatusCode, string(b)))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			return nil
		}

		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 2 * time.Minute
		if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
			return nil, err
		}
		return body, nil
	})

	metrics.PowerAPILatency.WithLabelValues("daily").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PowerAPICallsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PowerAPICallsTotal.WithLabelValues("ok").Inc()
	return result.([]byte), nil
}

// recordsFromParameters pivots POWER's per-parameter date maps into
// per-date raw records, sorted by date.
func recordsFromParameters(params map[string]map[string]float64) ([]models.RawRecord, error) {
	dates := make(map[string]struct{})
	for _, series := range params {
		for d := range series {
			dates[d] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	lookup := func(param, date string) *float64 {
		series, ok := params[param]
		if !ok {
			return nil
		}
		v, ok := series[date]
		if !ok {
			return nil
		}
		return &v
	}

	records := make([]models.RawRecord, 0, len(sorted))
	for _, d := range sorted {
		date, err := time.Parse("20060102", d)
		if err != nil {
			return nil, fmt.Errorf("parse power date %q: %w", d, err)
		}
		records = append(records, models.RawRecord{
			Date:        date.Format("2006-01-02"),
			TempC:       lookup("T2M", d),
			TempMaxC:    lookup("T2M_MAX", d),
			TempMinC:    lookup("T2M_MIN", d),
			PrecipMM:    lookup("PRECTOTCORR", d),
			WindMS:      lookup("WS2M", d),
			HumidityPct: lookup("RH2M", d),
			PressureKPa: lookup("PS", d),
		})
	}
	return records, nil
}
