package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/paradecast/internal/engine"
	"github.com/lox/paradecast/internal/metrics"
	"github.com/lox/paradecast/internal/models"
	"github.com/lox/paradecast/internal/store"
)

// maxWindowDays caps a single analysis request. Longer windows mean
// hundreds of upstream fetches for a question nobody is really asking.
const maxWindowDays = 31

// HistoryProvider assembles the historical record set for a location
// and window.
type HistoryProvider interface {
	History(ctx context.Context, loc models.Location, from, to time.Time) ([]models.DailyRecord, error)
}

type Server struct {
	store    *store.Store
	history  HistoryProvider
	engine   *engine.Engine
	port     string
	validate *validator.Validate
	logger   *log.Logger
}

func NewServer(st *store.Store, history HistoryProvider, eng *engine.Engine, port string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:    st,
		history:  history,
		engine:   eng,
		port:     port,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze-weather-window", s.handleAnalyzeWindow)
	mux.HandleFunc("/api/activities", s.handleActivities)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type analyzeRequest struct {
	Location struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
		Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
	} `json:"location"`
	DateFrom   string              `json:"date_from" validate:"required"`
	DateTo     string              `json:"date_to" validate:"required"`
	Activity   string              `json:"activity"`
	Thresholds *thresholdOverrides `json:"thresholds"`
}

// thresholdOverrides lets callers tweak individual profile limits
// without replacing the whole activity profile.
type thresholdOverrides struct {
	MaxRainMM      *float64 `json:"max_rain_mm" validate:"omitempty,gte=0"`
	IdealTempMinC  *float64 `json:"ideal_temp_min_c"`
	IdealTempMaxC  *float64 `json:"ideal_temp_max_c"`
	MaxWindKMH     *float64 `json:"max_wind_kmh" validate:"omitempty,gte=0"`
	MaxHumidityPct *float64 `json:"max_humidity_pct" validate:"omitempty,gte=0,lte=100"`
}

func (o *thresholdOverrides) apply(p models.ActivityProfile) models.ActivityProfile {
	if o.MaxRainMM != nil {
		p.MaxRainMM = *o.MaxRainMM
	}
	if o.IdealTempMinC != nil {
		p.IdealTempMinC = *o.IdealTempMinC
	}
	if o.IdealTempMaxC != nil {
		p.IdealTempMaxC = *o.IdealTempMaxC
	}
	if o.MaxWindKMH != nil {
		p.MaxWindKMH = *o.MaxWindKMH
	}
	if o.MaxHumidityPct != nil {
		p.MaxHumidityPct = *o.MaxHumidityPct
	}
	return p
}

func (s *Server) handleAnalyzeWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, err := engine.ParseDate(req.DateFrom)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := engine.ParseDate(req.DateTo)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if to.Before(from) {
		s.writeError(w, http.StatusBadRequest, "date_to is before date_from")
		return
	}
	if int(to.Sub(from).Hours()/24)+1 > maxWindowDays {
		s.writeError(w, http.StatusBadRequest, "window exceeds 31 days")
		return
	}

	location := models.Location{Name: req.Location.Name, Latitude: req.Location.Lat, Longitude: req.Location.Lon}
	engReq := engine.Request{
		Location: location,
		From:     from,
		To:       to,
		Activity: req.Activity,
	}
	if req.Thresholds != nil {
		profile := req.Thresholds.apply(engine.ProfileFor(req.Activity))
		engReq.Thresholds = &profile
	}

	activity := engine.ProfileFor(req.Activity).Name
	start := time.Now()
	s.logger.Printf("api: [%s] analyze %s %s..%s at %.2f,%.2f",
		requestID, activity, req.DateFrom, req.DateTo, location.Latitude, location.Longitude)

	history, err := s.history.History(r.Context(), location, from, to)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.writeError(w, 499, "request cancelled")
			return
		}
		s.logger.Printf("api: [%s] history: %v", requestID, err)
		metrics.AnalyzeRequests.WithLabelValues(activity, "error").Inc()
		s.writeError(w, http.StatusBadGateway, "historical data unavailable")
		return
	}

	report, err := s.engine.Analyze(r.Context(), engReq, history)
	if err != nil {
		s.logger.Printf("api: [%s] analyze: %v", requestID, err)
		metrics.AnalyzeRequests.WithLabelValues(activity, "error").Inc()
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	metrics.AnalyzeLatency.WithLabelValues(activity).Observe(time.Since(start).Seconds())
	status := "ok"
	if !report.Success {
		status = "no_data"
	}
	metrics.AnalyzeRequests.WithLabelValues(activity, status).Inc()

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": engine.Profiles(),
	})
}

type healthStatus struct {
	Status        string   `json:"status"`
	CachedRecords int      `json:"cached_records"`
	SchemaVersion int      `json:"schema_version"`
	Errors        []string `json:"errors,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := healthStatus{Status: "ok"}

	if n, err := s.store.CountRecords(); err != nil {
		health.Errors = append(health.Errors, err.Error())
	} else {
		health.CachedRecords = n
	}
	if v, err := s.store.MigrationVersion(); err != nil {
		health.Errors = append(health.Errors, err.Error())
	} else {
		health.SchemaVersion = v
	}

	code := http.StatusOK
	if len(health.Errors) > 0 {
		health.Status = "error"
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, health)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("api: write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
