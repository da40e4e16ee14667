package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/otel"
	"github.com/yourorg/agent-gdp/internal/protocol"
	"github.com/yourorg/agent-gdp/internal/render"
	"github.com/yourorg/agent-gdp/internal/security"
	"github.com/yourorg/agent-gdp/internal/series"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

// generate produces the series for seed, traced and timed.
func (s *Server) generate(ctx context.Context, seed uint64) []model.MetricPoint {
	_, span := otel.StartSpan(ctx, "series.generate")
	defer span.End()

	start := time.Now()
	points := series.Generate(s.config.Series, seed)

	if s.metrics != nil {
		s.metrics.generationDuration.Observe(time.Since(start).Seconds())
		s.metrics.seriesPoints.Set(float64(len(points)))
		if len(points) > 0 {
			gdp, _ := points[len(points)-1].GDP.Float64()
			s.metrics.latestGDP.Set(gdp)
		}
	}
	return points
}

// handleDashboard renders the HTML dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) int {
	if r.URL.Path != "/" {
		return s.errorResponse(w, r, http.StatusNotFound, "Not found")
	}
	if status, ok := s.allowRead(w, r); !ok {
		return status
	}

	req, err := s.parseRequest(r)
	if err != nil {
		return s.errorResponse(w, r, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	points := s.generate(ctx, req.Seed)

	ctx, span := otel.StartSpan(ctx, "render.page")
	defer span.End()

	page, err := render.NewPage(req.Seed, points, req.State)
	if err != nil {
		otel.RecordError(ctx, err)
		return s.errorResponse(w, r, statusFor(err), err.Error())
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		otel.RecordError(ctx, err)
		return s.errorResponse(w, r, http.StatusInternalServerError, "Failed to render page")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
	return http.StatusOK
}

// handleChart renders one of the dashboard charts as SVG
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) int {
	if status, ok := s.allowRead(w, r); !ok {
		return status
	}

	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	switch name {
	case "gdp.svg", "transactions.svg", "protocols.svg":
	default:
		return s.errorResponse(w, r, http.StatusNotFound, "Unknown chart: "+name)
	}

	req, err := s.parseRequest(r)
	if err != nil {
		return s.errorResponse(w, r, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	var buf bytes.Buffer
	if name == "protocols.svg" {
		err = render.ProtocolChart(&buf, protocol.Shares(), req.State)
	} else {
		points := s.generate(ctx, req.Seed)
		window, werr := req.State.Window(points)
		if werr != nil {
			return s.errorResponse(w, r, statusFor(werr), werr.Error())
		}

		spanCtx, span := otel.StartSpan(ctx, "render.chart")
		if name == "gdp.svg" {
			err = render.GDPChart(&buf, window)
		} else {
			err = render.TransactionsChart(&buf, window)
		}
		otel.RecordError(spanCtx, err)
		span.End()
	}
	if err != nil {
		logrus.WithError(err).WithField("chart", name).Warn("Chart rendering failed")
		return s.errorResponse(w, r, statusFor(err), "Failed to render chart")
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if req.Pinned {
		w.Header().Set("Cache-Control", "public, max-age=300")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
	return http.StatusOK
}

// handleSnapshot serves the JSON snapshot, answering conditional requests with 304
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) int {
	if status, ok := s.allowRead(w, r); !ok {
		return status
	}

	req, err := s.parseRequest(r)
	if err != nil {
		return s.errorResponse(w, r, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	points := s.generate(ctx, req.Seed)
	snap, err := render.NewSnapshot(req.Seed, points, req.State, time.Now())
	if err != nil {
		otel.RecordError(ctx, err)
		return s.errorResponse(w, r, statusFor(err), err.Error())
	}

	w.Header().Set("ETag", security.ETag(snap.Fingerprint))
	if security.MatchesETag(r.Header.Get("If-None-Match"), snap.Fingerprint) {
		w.WriteHeader(http.StatusNotModified)
		return http.StatusNotModified
	}

	writeJSON(w, http.StatusOK, snap)
	return http.StatusOK
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMetrics exposes Prometheus metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.config.EnableMetrics || s.registry == nil {
		http.Error(w, "Metrics disabled", http.StatusServiceUnavailable)
		return
	}

	promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

// handleStatus provides detailed service status information
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	timeframes := make([]string, 0, len(timeframe.All()))
	for _, tf := range timeframe.All() {
		timeframes = append(timeframes, tf.String())
	}

	status := map[string]interface{}{
		"status":     "operational",
		"uptime":     time.Since(s.startedAt).String(),
		"version":    version,
		"timeframes": timeframes,
		"protocols":  len(protocol.Shares()),
		"configuration": map[string]interface{}{
			"weeks":      s.config.Series.Weeks,
			"start":      s.config.Series.Start.Format(model.DateLayout),
			"start_gdp":  s.config.Series.StartGDP,
			"growth_min": s.config.Series.GrowthMin,
			"growth_max": s.config.Series.GrowthMax,
			"fixed_seed": s.config.HasSeed,
			"validation": s.config.EnableValidation,
			"metrics":    s.config.EnableMetrics,
			"rate_limit": s.config.RateLimitRPS,
			"timeout":    s.config.RequestTimeout.String(),
			"tracing":    s.config.OtelEndpoint != "",
			"default_tf": timeframe.Default.String(),
		},
	}

	writeJSON(w, http.StatusOK, status)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, timeframe.ErrUnknownTimeframe):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrInsufficientPoints), errors.Is(err, view.ErrZeroBase), errors.Is(err, render.ErrNoData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes body as the JSON response
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("Failed to encode response")
	}
}
