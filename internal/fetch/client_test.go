package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/render"
	"github.com/yourorg/agent-gdp/internal/series"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

func snapshotHandler(t *testing.T, mutate func(*model.Snapshot)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tf, err := timeframe.Parse(r.URL.Query().Get("tf"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		seed := uint64(99)
		if raw := r.URL.Query().Get("seed"); raw != "" {
			seed, err = strconv.ParseUint(raw, 10, 64)
			require.NoError(t, err)
		}
		state, err := view.NewState().WithTimeframe(tf)
		require.NoError(t, err)

		snap, err := render.NewSnapshot(seed, series.Generate(series.DefaultParams(), seed), state, time.Now())
		require.NoError(t, err)
		if mutate != nil {
			mutate(&snap)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}

func seedOf(v uint64) *uint64 { return &v }

func fastClient(url string) *Client {
	return NewClient(url, WithRetryMax(2), WithRetryWait(time.Millisecond, 5*time.Millisecond))
}

func TestSnapshot(t *testing.T) {
	ts := httptest.NewServer(snapshotHandler(t, nil))
	defer ts.Close()

	snap, err := fastClient(ts.URL+"/").Snapshot(context.Background(), timeframe.ThreeMonths, seedOf(4))
	require.NoError(t, err)

	assert.Equal(t, uint64(4), snap.Seed)
	assert.Equal(t, "3M", snap.Timeframe)
	assert.Len(t, snap.Window, 13)
	assert.Len(t, snap.Points, 52)
}

func TestSnapshot_ServerPicksSeed(t *testing.T) {
	ts := httptest.NewServer(snapshotHandler(t, nil))
	defer ts.Close()

	snap, err := fastClient(ts.URL).Snapshot(context.Background(), timeframe.OneYear, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), snap.Seed)
}

func TestSnapshot_ZeroSeed(t *testing.T) {
	ts := httptest.NewServer(snapshotHandler(t, nil))
	defer ts.Close()

	snap, err := fastClient(ts.URL).Snapshot(context.Background(), timeframe.OneYear, seedOf(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.Seed)
}

func TestSnapshot_RetriesServerErrors(t *testing.T) {
	var calls int32
	ok := snapshotHandler(t, nil)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		ok(w, r)
	}))
	defer ts.Close()

	_, err := fastClient(ts.URL).Snapshot(context.Background(), timeframe.OneMonth, seedOf(1))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSnapshot_APIError(t *testing.T) {
	ts := httptest.NewServer(snapshotHandler(t, nil))
	defer ts.Close()

	_, err := fastClient(ts.URL).Snapshot(context.Background(), timeframe.Timeframe("2Y"), seedOf(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "unknown timeframe")
}

func TestSnapshot_FingerprintMismatch(t *testing.T) {
	ts := httptest.NewServer(snapshotHandler(t, func(s *model.Snapshot) {
		s.Points = s.Points[1:]
	}))
	defer ts.Close()

	_, err := fastClient(ts.URL).Snapshot(context.Background(), timeframe.OneYear, seedOf(5))
	assert.ErrorIs(t, err, ErrFingerprintMismatch)
}
