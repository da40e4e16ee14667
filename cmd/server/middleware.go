package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestID tags every request with an ID, reusing a valid incoming one.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// withRateLimit applies the token bucket to everything except probes.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimit != nil && r.URL.Path != "/health" && r.URL.Path != "/metrics" {
			if !s.rateLimit.Allow() {
				if s.metrics != nil {
					s.metrics.rateLimited.Inc()
				}
				s.errorResponse(w, r, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// instrument adapts a status-returning handler, recording its duration and outcome.
func (s *Server) instrument(name string, fn func(http.ResponseWriter, *http.Request) int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := fn(w, r)
		elapsed := time.Since(start)

		if s.metrics != nil {
			s.metrics.requestDuration.WithLabelValues(name).Observe(elapsed.Seconds())
			s.metrics.requestCounter.WithLabelValues(name, strconv.Itoa(status)).Inc()
		}

		logrus.WithFields(logrus.Fields{
			"request_id": requestID(r.Context()),
			"handler":    name,
			"path":       r.URL.Path,
			"status":     status,
			"latency_ms": elapsed.Milliseconds(),
		}).Debug("Request handled")
	})
}
