// Package view holds the dashboard view state and the values derived from a series.
//
// Derived values are plain functions of the series and the state; nothing is cached.
package view

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/timeframe"
)

// DimmedOpacity is applied to protocols other than the hovered one.
const DimmedOpacity = 0.3

var (
	// ErrInsufficientPoints is returned when a change needs two points and fewer exist.
	ErrInsufficientPoints = errors.New("series needs at least two points")

	// ErrZeroBase is returned when the previous value of a change is zero.
	ErrZeroBase = errors.New("previous value is zero")
)

var hundred = decimal.NewFromInt(100)

// State is the user's current selection.
type State struct {
	Timeframe       timeframe.Timeframe `json:"timeframe"`
	HoveredProtocol string              `json:"hoveredProtocol,omitempty"`
}

// NewState returns the state shown on first load.
func NewState() State {
	return State{Timeframe: timeframe.Default}
}

// WithTimeframe returns a copy of s with tf selected.
func (s State) WithTimeframe(tf timeframe.Timeframe) (State, error) {
	if !tf.Valid() {
		return s, fmt.Errorf("%w: %q", timeframe.ErrUnknownTimeframe, string(tf))
	}
	s.Timeframe = tf
	return s, nil
}

// WithHover returns a copy of s highlighting the named protocol.
func (s State) WithHover(name string) State {
	s.HoveredProtocol = name
	return s
}

// ClearHover returns a copy of s without a highlighted protocol.
func (s State) ClearHover() State {
	s.HoveredProtocol = ""
	return s
}

// Hovering reports whether a protocol is highlighted.
func (s State) Hovering() bool {
	return s.HoveredProtocol != ""
}

// Opacity returns the display opacity of the named protocol.
func (s State) Opacity(name string) float64 {
	if !s.Hovering() || s.HoveredProtocol == name {
		return 1
	}
	return DimmedOpacity
}

// Window returns the part of series covered by the selected timeframe.
func (s State) Window(series []model.MetricPoint) ([]model.MetricPoint, error) {
	return timeframe.Window(series, s.Timeframe)
}

// LatestPair returns the last and second to last points of series.
func LatestPair(series []model.MetricPoint) (latest, previous model.MetricPoint, err error) {
	if len(series) < 2 {
		return model.MetricPoint{}, model.MetricPoint{}, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(series))
	}
	return series[len(series)-1], series[len(series)-2], nil
}

// PercentChange computes (latest - previous) / previous * 100.
func PercentChange(previous, latest decimal.Decimal) (decimal.Decimal, error) {
	if previous.IsZero() {
		return decimal.Zero, ErrZeroBase
	}
	return latest.Sub(previous).Div(previous).Mul(hundred), nil
}

// GDPChange returns the formatted week-over-week GDP change of series.
func GDPChange(series []model.MetricPoint) (string, error) {
	latest, previous, err := LatestPair(series)
	if err != nil {
		return "", err
	}
	pct, err := PercentChange(previous.GDP, latest.GDP)
	if err != nil {
		return "", fmt.Errorf("gdp change: %w", err)
	}
	return Percent(pct), nil
}

// StatCards builds the headline cards from the last two points of series.
func StatCards(series []model.MetricPoint) ([]model.StatCard, error) {
	latest, previous, err := LatestPair(series)
	if err != nil {
		return nil, err
	}

	type metric struct {
		title    string
		value    string
		unit     string
		from, to decimal.Decimal
	}
	metrics := []metric{
		{"Total GDP", Millions(latest.GDP), "M", previous.GDP, latest.GDP},
		{"Active Agents", Count(latest.ActiveAgents), "", decimal.NewFromInt(int64(previous.ActiveAgents)), decimal.NewFromInt(int64(latest.ActiveAgents))},
		{"24h Transactions", Count(latest.Transactions), "", decimal.NewFromInt(int64(previous.Transactions)), decimal.NewFromInt(int64(latest.Transactions))},
		{"Agent TVL", Millions(latest.TVL), "M", previous.TVL, latest.TVL},
	}

	cards := make([]model.StatCard, 0, len(metrics))
	for _, m := range metrics {
		pct, err := PercentChange(m.from, m.to)
		if err != nil {
			return nil, fmt.Errorf("%s change: %w", m.title, err)
		}
		cards = append(cards, model.StatCard{
			Title:    m.title,
			Value:    m.value,
			Unit:     m.unit,
			Change:   Percent(pct),
			Positive: pct.Sign() >= 0,
		})
	}
	return cards, nil
}
