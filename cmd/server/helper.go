package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/protocol"
	"github.com/yourorg/agent-gdp/internal/series"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

// errInvalidSeed is returned for a seed query parameter that is not an unsigned integer
var errInvalidSeed = errors.New("invalid seed")

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Error      string `json:"error"`
	RequestID  string `json:"requestId,omitempty"`
}

// viewRequest is the seed and view state carried in the query string
type viewRequest struct {
	Seed  uint64
	State view.State

	// Pinned is false when Seed was drawn at random for this request
	Pinned bool
}

// parseRequest reads tf, seed and hover from the query string.
// A missing seed falls back to the configured SEED, or a fresh random one.
// Unknown protocol names in hover are ignored.
func (s *Server) parseRequest(r *http.Request) (viewRequest, error) {
	q := r.URL.Query()
	req := viewRequest{State: view.NewState()}

	if raw := q.Get("tf"); raw != "" {
		tf, err := timeframe.Parse(raw)
		if err != nil {
			return req, err
		}
		if req.State, err = req.State.WithTimeframe(tf); err != nil {
			return req, err
		}
	}

	switch raw := strings.TrimSpace(q.Get("seed")); {
	case raw != "":
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: %q", errInvalidSeed, raw)
		}
		req.Seed, req.Pinned = seed, true
	case s.config.HasSeed:
		req.Seed, req.Pinned = s.config.Seed, true
	default:
		req.Seed = series.NewSeed()
	}

	if hover := q.Get("hover"); hover != "" {
		if _, ok := protocol.Find(protocol.Shares(), hover); ok {
			req.State = req.State.WithHover(hover)
		} else {
			logrus.WithField("hover", hover).Debug("Ignoring unknown protocol")
		}
	}

	return req, nil
}

// allowRead rejects everything but GET and HEAD
func (s *Server) allowRead(w http.ResponseWriter, r *http.Request) (int, bool) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return http.StatusOK, true
	}
	w.Header().Set("Allow", "GET, HEAD")
	return s.errorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed"), false
}

// errorResponse writes a formatted JSON error and returns the status code
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errorMsg string) int {
	id := requestID(r.Context())
	logrus.WithFields(logrus.Fields{
		"request_id": id,
		"path":       r.URL.Path,
		"status":     statusCode,
	}).Warn(errorMsg)

	writeJSON(w, statusCode, ErrorResponse{
		StatusCode: statusCode,
		Status:     "error",
		Error:      errorMsg,
		RequestID:  id,
	})
	return statusCode
}
