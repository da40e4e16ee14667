// Package timeframe selects trailing windows of a weekly series.
package timeframe

import (
	"errors"
	"fmt"

	"github.com/yourorg/agent-gdp/internal/model"
)

// Timeframe is one of the fixed symbolic windows.
type Timeframe string

// Supported timeframes
const (
	OneMonth    Timeframe = "1M"
	ThreeMonths Timeframe = "3M"
	SixMonths   Timeframe = "6M"
	OneYear     Timeframe = "1Y"
)

// Default is the timeframe shown on first load.
const Default = OneYear

// ErrUnknownTimeframe is returned for any symbol outside the supported set.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

var weeks = map[Timeframe]int{
	OneMonth:    4,
	ThreeMonths: 13,
	SixMonths:   26,
	OneYear:     52,
}

// All returns the supported timeframes in display order.
func All() []Timeframe {
	return []Timeframe{OneMonth, ThreeMonths, SixMonths, OneYear}
}

// Parse converts a symbol into a Timeframe. Only the exact symbols are accepted.
func Parse(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if _, ok := weeks[tf]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
	}
	return tf, nil
}

// Weeks returns the number of trailing points the timeframe covers.
func (tf Timeframe) Weeks() (int, error) {
	n, ok := weeks[tf]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimeframe, string(tf))
	}
	return n, nil
}

// Valid reports whether tf is one of the supported symbols.
func (tf Timeframe) Valid() bool {
	_, ok := weeks[tf]
	return ok
}

func (tf Timeframe) String() string {
	return string(tf)
}

// Window returns the trailing points of series covered by tf, in order.
// A series shorter than the window is returned whole. The result's capacity
// is clipped, so appending to it never writes into series.
func Window(series []model.MetricPoint, tf Timeframe) ([]model.MetricPoint, error) {
	n, err := tf.Weeks()
	if err != nil {
		return nil, err
	}
	if n > len(series) {
		n = len(series)
	}
	start := len(series) - n
	return series[start:len(series):len(series)], nil
}

// MustWindow is Window for callers that have already validated tf.
// It panics on an unknown timeframe.
func MustWindow(series []model.MetricPoint, tf Timeframe) []model.MetricPoint {
	w, err := Window(series, tf)
	if err != nil {
		panic(err)
	}
	return w
}
