package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/protocol"
	"github.com/yourorg/agent-gdp/internal/security"
	"github.com/yourorg/agent-gdp/internal/series"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

func TestCharts_RenderSVG(t *testing.T) {
	full := series.Generate(series.DefaultParams(), 5)

	for _, tf := range timeframe.All() {
		t.Run(tf.String(), func(t *testing.T) {
			window := timeframe.MustWindow(full, tf)

			var gdp bytes.Buffer
			require.NoError(t, GDPChart(&gdp, window))
			assert.Contains(t, gdp.String(), "<svg")

			var txs bytes.Buffer
			require.NoError(t, TransactionsChart(&txs, window))
			assert.Contains(t, txs.String(), "<svg")
		})
	}
}

func TestCharts_NoData(t *testing.T) {
	full := series.Generate(series.DefaultParams(), 5)

	var buf bytes.Buffer
	assert.ErrorIs(t, GDPChart(&buf, nil), ErrNoData)
	assert.ErrorIs(t, GDPChart(&buf, full[:1]), ErrNoData)
	assert.ErrorIs(t, TransactionsChart(&buf, full[:1]), ErrNoData)
	assert.ErrorIs(t, ProtocolChart(&buf, nil, view.NewState()), ErrNoData)
}

func TestProtocolChart(t *testing.T) {
	var plain, hovered bytes.Buffer
	require.NoError(t, ProtocolChart(&plain, protocol.Shares(), view.NewState()))
	require.NoError(t, ProtocolChart(&hovered, protocol.Shares(), view.NewState().WithHover("Fetch.ai")))

	assert.Contains(t, plain.String(), "<svg")
	assert.NotEqual(t, plain.String(), hovered.String(), "hover must change the bar colors")
}

func TestQuery(t *testing.T) {
	s := view.NewState()
	assert.Equal(t, "seed=7&tf=1Y", Query(7, s))
	assert.Equal(t, "hover=Ocean+Protocol&seed=7&tf=1Y", Query(7, s.WithHover("Ocean Protocol")))
}

func TestNewPage(t *testing.T) {
	full := series.Generate(series.DefaultParams(), 5)
	state, err := view.NewState().WithTimeframe(timeframe.ThreeMonths)
	require.NoError(t, err)
	state = state.WithHover("Autonolas")

	page, err := NewPage(5, full, state)
	require.NoError(t, err)

	assert.Equal(t, 13, page.Summary.Points)
	require.Len(t, page.Cards, 4)
	require.Len(t, page.Timeframes, 4)
	require.Len(t, page.Protocols, 5)
	require.Len(t, page.Agents, 5)

	for _, link := range page.Timeframes {
		assert.Equal(t, link.Label == "3M", link.Active, link.Label)
		assert.Contains(t, link.Href, "seed=5")
		assert.Contains(t, link.Href, "hover=Autonolas")
	}
	assert.Equal(t, 1.0, page.Protocols[0].Opacity)
	assert.Equal(t, view.DimmedOpacity, page.Protocols[1].Opacity)
	assert.Equal(t, "/?seed=5&tf=3M", page.ClearHover)
	assert.Equal(t, "/api/snapshot?seed=5&tf=3M", page.SnapshotURL)
	assert.Equal(t, "$2.3M", page.Agents[0].Revenue)
	assert.Equal(t, "45.2K", page.Agents[0].Txs)
	assert.Equal(t, "+15.3%", page.Agents[0].Change)
}

func TestNewPage_UnknownTimeframe(t *testing.T) {
	full := series.Generate(series.DefaultParams(), 5)
	_, err := NewPage(5, full, view.State{Timeframe: "2Y"})
	assert.ErrorIs(t, err, timeframe.ErrUnknownTimeframe)
}

func TestWritePage(t *testing.T) {
	full := series.Generate(series.DefaultParams(), 5)
	state, err := view.NewState().WithTimeframe(timeframe.OneMonth)
	require.NoError(t, err)

	page, err := NewPage(5, full, state.WithHover("Fetch.ai"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, page))
	html := buf.String()

	assert.Contains(t, html, "AGENT GDP")
	assert.Contains(t, html, `class="active">1M</a>`)
	assert.Contains(t, html, "TOP PERFORMING AGENTS")
	assert.Contains(t, html, "AutoTrader-X7")
	assert.Contains(t, html, "opacity:0.3")
	assert.Contains(t, html, "/charts/gdp.svg?")
	assert.Equal(t, 1, strings.Count(html, `class="active"`))
}

func TestNewSnapshot(t *testing.T) {
	full := series.Generate(series.DefaultParams(), 9)
	state, err := view.NewState().WithTimeframe(timeframe.SixMonths)
	require.NoError(t, err)

	first, err := NewSnapshot(9, full, state, time.Unix(100, 0))
	require.NoError(t, err)
	second, err := NewSnapshot(9, full, state, time.Unix(200, 0))
	require.NoError(t, err)

	assert.Equal(t, "6M", first.Timeframe)
	assert.Len(t, first.Points, 52)
	assert.Len(t, first.Window, 26)
	assert.Len(t, first.Protocols, 5)
	assert.Len(t, first.Leaderboard, 5)
	assert.Equal(t, int64(100), first.GeneratedAt)
	assert.NotEmpty(t, first.Fingerprint)
	assert.Equal(t, first.Fingerprint, second.Fingerprint, "generation time must not change the fingerprint")

	ok, err := security.Verify(func() model.Snapshot {
		s := first
		s.GeneratedAt, s.Fingerprint = 0, ""
		return s
	}(), first.Fingerprint)
	require.NoError(t, err)
	assert.True(t, ok)

	other, err := NewSnapshot(10, series.Generate(series.DefaultParams(), 10), state, time.Unix(100, 0))
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, other.Fingerprint)
}
