// Package aggregate computes summary statistics over a window of the series.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yourorg/agent-gdp/internal/model"
)

// Selector extracts a decimal value from a point.
type Selector func(model.MetricPoint) decimal.Decimal

// GDP selects the GDP of a point.
func GDP(p model.MetricPoint) decimal.Decimal { return p.GDP }

// TVL selects the TVL of a point.
func TVL(p model.MetricPoint) decimal.Decimal { return p.TVL }

// Transactions selects the transaction count of a point.
func Transactions(p model.MetricPoint) decimal.Decimal {
	return decimal.NewFromInt(int64(p.Transactions))
}

// ActiveAgents selects the active agent count of a point.
func ActiveAgents(p model.MetricPoint) decimal.Decimal {
	return decimal.NewFromInt(int64(p.ActiveAgents))
}

// Mean returns the arithmetic mean of the selected values, or zero for an empty window.
func Mean(points []model.MetricPoint, sel Selector) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(sel(p))
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}

// Median returns the median of the selected values.
// Less sensitive to single spikes of the random walk than the mean.
func Median(points []model.MetricPoint, sel Selector) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}

	values := make([]decimal.Decimal, 0, len(points))
	for _, p := range points {
		values = append(values, sel(p))
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })

	n := len(values)
	if n%2 == 0 {
		return values[n/2-1].Add(values[n/2]).Div(decimal.NewFromInt(2))
	}
	return values[n/2]
}

// MinMax returns the smallest and largest selected values.
func MinMax(points []model.MetricPoint, sel Selector) (decimal.Decimal, decimal.Decimal) {
	if len(points) == 0 {
		return decimal.Zero, decimal.Zero
	}
	lo, hi := sel(points[0]), sel(points[0])
	for _, p := range points[1:] {
		v := sel(p)
		lo = decimal.Min(lo, v)
		hi = decimal.Max(hi, v)
	}
	return lo, hi
}

// Growth returns the percentage change of the selected value from the first to the last point.
func Growth(points []model.MetricPoint, sel Selector) decimal.Decimal {
	if len(points) < 2 {
		return decimal.Zero
	}
	first := sel(points[0])
	if first.IsZero() {
		return decimal.Zero
	}
	last := sel(points[len(points)-1])
	return last.Sub(first).Div(first).Mul(decimal.NewFromInt(100))
}

// Summarize builds the window statistics shown next to the main chart.
func Summarize(points []model.MetricPoint) model.WindowStats {
	stats := model.WindowStats{Points: len(points)}
	if len(points) == 0 {
		return stats
	}

	stats.MeanGDP = Mean(points, GDP).Round(2)
	stats.MedianGDP = Median(points, GDP).Round(2)
	stats.MinGDP, stats.MaxGDP = MinMax(points, GDP)
	stats.GDPGrowth = Growth(points, GDP).Round(1)

	for _, p := range points {
		stats.TotalTxs += int64(p.Transactions)
	}
	stats.MeanAgents, _ = Mean(points, ActiveAgents).Round(1).Float64()

	return stats
}
