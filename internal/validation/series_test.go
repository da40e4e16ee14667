package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/series"
)

func TestCheckSeries_GeneratedSeriesPasses(t *testing.T) {
	params := series.DefaultParams()
	opts := OptionsFromParams(params)

	for seed := uint64(100); seed < 110; seed++ {
		assert.NoError(t, CheckSeries(series.Generate(params, seed), opts))
	}
}

func TestViolations(t *testing.T) {
	opts := DefaultOptions()
	good := series.Generate(series.DefaultParams(), 1)

	tests := []struct {
		name   string
		mutate func([]model.MetricPoint) []model.MetricPoint
		reason string
	}{
		{
			name:   "short series",
			mutate: func(p []model.MetricPoint) []model.MetricPoint { return p[:51] },
			reason: "expected 52 points, got 51",
		},
		{
			name: "transactions too high",
			mutate: func(p []model.MetricPoint) []model.MetricPoint {
				p[3].Transactions = 150000
				return p
			},
			reason: "transactions 150000 outside [100000, 150000)",
		},
		{
			name: "agents too low",
			mutate: func(p []model.MetricPoint) []model.MetricPoint {
				p[10].ActiveAgents = 2000
				return p
			},
			reason: "active agents 2000 below 2150",
		},
		{
			name: "swapped dates",
			mutate: func(p []model.MetricPoint) []model.MetricPoint {
				p[5], p[6] = p[6], p[5]
				return p
			},
			reason: "gap of 336h0m0s after previous point",
		},
		{
			name: "non-positive gdp",
			mutate: func(p []model.MetricPoint) []model.MetricPoint {
				p[0].GDP = decimal.Zero
				return p
			},
			reason: "GDP 0 is not positive",
		},
		{
			name: "bad date",
			mutate: func(p []model.MetricPoint) []model.MetricPoint {
				p[2].Date = "soon"
				return p
			},
			reason: `unparseable date "soon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := tt.mutate(append([]model.MetricPoint(nil), good...))
			violations := Violations(pts, opts)
			require.NotEmpty(t, violations)

			reasons := make([]string, 0, len(violations))
			for _, v := range violations {
				reasons = append(reasons, v.Reason)
			}
			assert.Contains(t, reasons, tt.reason)
			assert.Error(t, CheckSeries(pts, opts))
		})
	}
}

func TestViolation_Error(t *testing.T) {
	assert.Equal(t, "point 3: broken", Violation{Index: 3, Reason: "broken"}.Error())
	assert.Equal(t, "broken", Violation{Index: -1, Reason: "broken"}.Error())
}
