package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zgpcy/wallclock/internal/config"
	"github.com/zgpcy/wallclock/internal/logger"
	"github.com/zgpcy/wallclock/internal/timeofday"
	"github.com/zgpcy/wallclock/internal/version"
	"golang.org/x/time/rate"
)

//go:embed templates/index.html
var indexTemplate string

// HTTP server timeout constants
const (
	DefaultReadTimeout  = 15 * time.Second // Maximum duration for reading the entire request
	DefaultWriteTimeout = 15 * time.Second // Maximum duration before timing out writes of the response
	DefaultIdleTimeout  = 60 * time.Second // Maximum amount of time to wait for the next request
)

// Clock is the clock state and controls served over HTTP
type Clock interface {
	Reading() timeofday.Reading
	Format() timeofday.Format
	Running() bool
	Ticks() uint64
	LastCapture() time.Time
	Start()
	Reset()
}

// indexPageData holds template data for the index page
type indexPageData struct {
	Time           string
	StatusClass    string
	StatusText     string
	Format         string
	Ticks          uint64
	LastCapture    string
	Version        string
	RefreshSeconds int
}

// timeResponse is the JSON body of /api/time and the control endpoints
type timeResponse struct {
	timeofday.Reading
	Format  string `json:"format"`
	Running bool   `json:"running"`
	Ticks   uint64 `json:"ticks"`
}

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	clock   Clock
	cfg     *config.Config
	logger  *logger.Logger
	index   *template.Template
	limiter *rate.Limiter
}

// NewServer creates a new HTTP server. Metrics are served from gatherer.
func NewServer(cfg *config.Config, clk Clock, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      mux,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		clock:   clk,
		cfg:     cfg,
		logger:  log.WithFields("component", "server"),
		index:   template.Must(template.New("index").Parse(indexTemplate)),
		limiter: rate.NewLimiter(rate.Limit(cfg.ControlRateLimit), cfg.ControlBurst),
	}

	// Register handlers
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/time", s.handleTime)
	mux.HandleFunc("/api/start", s.control("start", clk.Start))
	mux.HandleFunc("/api/reset", s.control("reset", clk.Reset))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// handleIndex serves a simple status page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	statusClass := "stopped"
	statusText := "Stopped"
	if s.clock.Running() {
		statusClass = "running"
		statusText = "Running"
	}

	lastCapture := s.clock.LastCapture()
	lastCaptureText := "Never"
	if !lastCapture.IsZero() {
		lastCaptureText = lastCapture.Format("2006-01-02 15:04:05 MST")
	}

	refresh := int(s.cfg.Interval() / time.Second)
	if refresh < 1 {
		refresh = 1
	}

	data := indexPageData{
		Time:           s.clock.Reading().String(),
		StatusClass:    statusClass,
		StatusText:     statusText,
		Format:         string(s.clock.Format()),
		Ticks:          s.clock.Ticks(),
		LastCapture:    lastCaptureText,
		Version:        version.Version,
		RefreshSeconds: refresh,
	}

	w.Header().Set("Content-Type", "text/html")
	if err := s.index.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute index template", "error", err)
	}
}

// handleTime returns the current reading as JSON
func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeState(w, http.StatusOK)
}

// control wraps a clock action in a rate-limited POST handler
func (s *Server) control(name string, action func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		if !s.limiter.Allow() {
			s.logger.Warn("Control request rate limited", "action", name, "remote_addr", r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		s.logger.Info("Control request", "action", name, "remote_addr", r.RemoteAddr)
		action()

		// Browser form submissions return to the status page
		if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == "application/x-www-form-urlencoded" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		s.writeState(w, http.StatusOK)
	}
}

// writeState writes the clock state as JSON
func (s *Server) writeState(w http.ResponseWriter, status int) {
	resp := timeResponse{
		Reading: s.clock.Reading(),
		Format:  string(s.clock.Format()),
		Running: s.clock.Running(),
		Ticks:   s.clock.Ticks(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to write time response", "error", err)
	}
}

// handleHealth handles health check requests (always returns 200 for liveness)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		s.logger.Error("Failed to write health response", "error", err)
	}
}

// handleReady handles readiness check requests (returns 200 only while the clock is running)
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !s.clock.Running() {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"status":"not ready","message":"clock is stopped"}`)); err != nil {
			s.logger.Error("Failed to write ready response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ready"}`)); err != nil {
		s.logger.Error("Failed to write ready response", "error", err)
	}
}
