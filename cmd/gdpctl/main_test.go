package main

import (
	"bytes"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/agent-gdp/internal/render"
	"github.com/yourorg/agent-gdp/internal/series"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

func TestPrintSummary(t *testing.T) {
	state, err := view.NewState().WithTimeframe(timeframe.OneMonth)
	require.NoError(t, err)
	snap, err := render.NewSnapshot(8, series.Generate(series.DefaultParams(), 8), state, time.Now())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, "seed 8")
	assert.Contains(t, out, "timeframe 1M")
	assert.Contains(t, out, "4 weeks")
	assert.Contains(t, out, "Total GDP")
	assert.Contains(t, out, "Ocean Protocol")
	assert.Contains(t, out, "Others")
	assert.Contains(t, out, "6.9%")
	assert.Contains(t, out, snap.Stats[0].Value+"M")
	assert.NotContains(t, out, snap.Stats[0].Value+" M")
	assert.Contains(t, out, "1. AutoTrader-X7")
	assert.Contains(t, out, "$2.3M")
	assert.Contains(t, out, snap.Fingerprint)
}

func TestRequestedSeed(t *testing.T) {
	newFlags := func() (*flag.FlagSet, *uint64) {
		fs := flag.NewFlagSet("gdpctl", flag.ContinueOnError)
		return fs, fs.Uint64("seed", 0, "")
	}

	fs, seed := newFlags()
	require.NoError(t, fs.Parse(nil))
	assert.Nil(t, requestedSeed(fs, *seed))

	fs, seed = newFlags()
	require.NoError(t, fs.Parse([]string{"-seed", "0"}))
	got := requestedSeed(fs, *seed)
	require.NotNil(t, got)
	assert.Equal(t, uint64(0), *got)

	fs, seed = newFlags()
	require.NoError(t, fs.Parse([]string{"-seed=42"}))
	got = requestedSeed(fs, *seed)
	require.NotNil(t, got)
	assert.Equal(t, uint64(42), *got)
}
