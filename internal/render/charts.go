// Package render draws the dashboard charts and page.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/view"
)

// TransactionPoints is how many trailing points the transaction chart shows.
const TransactionPoints = 20

// Chart dimensions in pixels
const (
	MainWidth       = 1100
	MainHeight      = 320
	SecondaryWidth  = 540
	SecondaryHeight = 260
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to chart")

var (
	cyan       = hexColor("#00F0FF")
	magenta    = hexColor("#FF00AA")
	axisColor  = cyan.WithAlpha(0x80)
	background = drawing.ColorFromHex("000000")
)

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func axisStyle() chart.Style {
	return chart.Style{
		FontColor:   axisColor,
		FontSize:    8,
		StrokeColor: cyan.WithAlpha(0x40),
	}
}

func darkStyle() chart.Style {
	return chart.Style{FillColor: background, StrokeColor: background}
}

// paddedRange returns a y-range with some headroom; go-chart refuses zero-height ranges.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func timeAxis(points []model.MetricPoint, sel func(model.MetricPoint) float64) ([]time.Time, []float64, error) {
	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		day, err := p.Time()
		if err != nil {
			return nil, nil, fmt.Errorf("point %q: %w", p.Date, err)
		}
		xs = append(xs, day)
		ys = append(ys, sel(p))
	}
	return xs, ys, nil
}

// GDPChart draws the GDP area chart of the selected window as SVG.
func GDPChart(w io.Writer, window []model.MetricPoint) error {
	if len(window) < 2 {
		return ErrNoData
	}
	xs, ys, err := timeAxis(window, func(p model.MetricPoint) float64 {
		v, _ := p.GDP.Float64()
		return v
	})
	if err != nil {
		return err
	}

	ch := chart.Chart{
		Width:      MainWidth,
		Height:     MainHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 16}, FillColor: background},
		Canvas:     darkStyle(),
		XAxis: chart.XAxis{
			Style:          axisStyle(),
			ValueFormatter: chart.TimeValueFormatterWithFormat(model.LabelLayout),
		},
		YAxis: chart.YAxis{
			Style: axisStyle(),
			Range: paddedRange(ys),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return view.MillionsAxis(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "GDP",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: cyan,
					StrokeWidth: 2,
					FillColor:   cyan.WithAlpha(0x40),
				},
			},
		},
	}
	return ch.Render(chart.SVG, w)
}

// TransactionsChart draws the transaction volume line of the last TransactionPoints of window.
func TransactionsChart(w io.Writer, window []model.MetricPoint) error {
	if len(window) > TransactionPoints {
		window = window[len(window)-TransactionPoints:]
	}
	if len(window) < 2 {
		return ErrNoData
	}
	xs, ys, err := timeAxis(window, func(p model.MetricPoint) float64 { return float64(p.Transactions) })
	if err != nil {
		return err
	}

	ch := chart.Chart{
		Width:      SecondaryWidth,
		Height:     SecondaryHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 16}, FillColor: background},
		Canvas:     darkStyle(),
		XAxis: chart.XAxis{
			Style:          axisStyle(),
			ValueFormatter: chart.TimeValueFormatterWithFormat(model.LabelLayout),
		},
		YAxis: chart.YAxis{
			Style: axisStyle(),
			Range: paddedRange(ys),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return view.ThousandsAxis(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Transactions",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: magenta, StrokeWidth: 2},
			},
		},
	}
	return ch.Render(chart.SVG, w)
}

// ProtocolChart draws the protocol share bars, dimming every protocol but the hovered one.
func ProtocolChart(w io.Writer, shares []model.ProtocolShare, state view.State) error {
	if len(shares) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(shares))
	highest := 0.0
	for _, s := range shares {
		if s.Share > highest {
			highest = s.Share
		}
		col := hexColor(s.Color).WithAlpha(uint8(state.Opacity(s.Name) * 255))
		bars = append(bars, chart.Value{
			Label: s.Name,
			Value: s.Share,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	bc := chart.BarChart{
		Width:      SecondaryWidth,
		Height:     SecondaryHeight,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 10, Right: 10, Bottom: 10}, FillColor: background},
		Canvas:     darkStyle(),
		XAxis:      axisStyle(),
		YAxis: chart.YAxis{
			Style: axisStyle(),
			Range: &chart.ContinuousRange{Min: 0, Max: highest*1.1 + 1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}
