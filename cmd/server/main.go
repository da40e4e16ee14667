// Package main is the entry point for the Agent GDP dashboard, a small web service that
// renders a synthetic onchain agent economy series as charts, stat cards and JSON snapshots.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/config"
	"github.com/yourorg/agent-gdp/internal/otel"
	"github.com/yourorg/agent-gdp/internal/protocol"
	"github.com/yourorg/agent-gdp/internal/series"
	"github.com/yourorg/agent-gdp/internal/validation"
	"golang.org/x/time/rate"
)

const version = "1.0.0"

// probeSeed is the fixed seed of the series checked at startup.
const probeSeed = 1

// Server represents the dashboard server instance
type Server struct {
	// Configuration for the server
	config config.Config

	// HTTP server instance
	server *http.Server

	// Metrics registry, nil when metrics are disabled
	metrics  *serverMetrics
	registry *prometheus.Registry

	// Validation options derived from the series parameters
	validationOpts validation.Options

	rateLimit *rate.Limiter
	startedAt time.Time
}

// serverMetrics holds Prometheus metrics for the server
type serverMetrics struct {
	requestCounter     *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	generationDuration prometheus.Histogram
	rateLimited        prometheus.Counter
	latestGDP          prometheus.Gauge
	seriesPoints       prometheus.Gauge
}

// registerMetrics sets up Prometheus metrics collection on reg
func registerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentgdp_requests_total",
				Help: "Total number of requests processed",
			},
			[]string{"handler", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agentgdp_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"handler"},
		),
		generationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "agentgdp_generation_duration_seconds",
				Help:    "Time spent generating a series",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "agentgdp_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		latestGDP: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "agentgdp_latest_gdp_millions",
				Help: "Latest GDP value of the most recently generated series",
			},
		),
		seriesPoints: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "agentgdp_series_points",
				Help: "Number of points in the most recently generated series",
			},
		),
	}

	reg.MustRegister(
		m.requestCounter,
		m.requestDuration,
		m.generationDuration,
		m.rateLimited,
		m.latestGDP,
		m.seriesPoints,
	)

	return m
}

// main is the entry point for the application
func main() {
	cfg := config.Load()

	// Configure logging
	setupLogging(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	shutdownTracer := otel.InitTracer(cfg)
	defer shutdownTracer()

	server, err := NewServer(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize server: %v", err)
	}
	server.Start()
}

// setupLogging configures the logging for the application
func setupLogging(logFormat, logLevel string) {
	// Set log formatter based on environment
	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// Set log level based on environment
	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.Info("Logging configured")
}

// NewServer creates a server and probes the configured generator once so that
// misconfigured parameters fail at startup rather than on the first request.
func NewServer(cfg config.Config) (*Server, error) {
	if err := protocol.Validate(protocol.Shares()); err != nil {
		return nil, fmt.Errorf("protocol shares: %w", err)
	}

	s := &Server{
		config:         cfg,
		validationOpts: validation.OptionsFromParams(cfg.Series),
		startedAt:      time.Now(),
	}

	if cfg.EnableValidation {
		probe := series.Generate(cfg.Series, probeSeed)
		if err := validation.CheckSeries(probe, s.validationOpts); err != nil {
			return nil, fmt.Errorf("startup probe failed: %w", err)
		}
	}

	if cfg.EnableMetrics {
		s.registry = prometheus.NewRegistry()
		s.metrics = registerMetrics(s.registry)
	}

	if cfg.RateLimitRPS > 0 {
		s.rateLimit = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		logrus.Infof("Rate limiting initialized: %v req/s, burst: %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	logrus.WithFields(logrus.Fields{
		"port":       cfg.Port,
		"weeks":      cfg.Series.Weeks,
		"start":      cfg.Series.Start.Format(time.DateOnly),
		"fixed_seed": cfg.HasSeed,
		"validation": cfg.EnableValidation,
		"metrics":    cfg.EnableMetrics,
	}).Info("Server initialized")

	return s, nil
}

// Handler returns the routed handler wrapped in the server middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/", s.instrument("dashboard", s.handleDashboard))
	mux.Handle("/charts/", s.instrument("chart", s.handleChart))
	mux.Handle("/api/snapshot", s.instrument("snapshot", s.handleSnapshot))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/status", s.handleStatus)

	return s.withRequestID(s.withRateLimit(mux))
}

// Start begins the HTTP server and sets up graceful shutdown
func (s *Server) Start() {
	// Configure server with timeouts
	s.server = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped")
}
