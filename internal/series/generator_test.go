package series

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ShapeAndCadence(t *testing.T) {
	params := DefaultParams()
	points := Generate(params, 42)

	require.Len(t, points, 52)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, "Jan 1", points[0].Label)
	assert.Equal(t, "Jan 8", points[1].Label)
	assert.Equal(t, "2024-12-23", points[51].Date)

	for i := 1; i < len(points); i++ {
		prev, err := points[i-1].Time()
		require.NoError(t, err)
		cur, err := points[i].Time()
		require.NoError(t, err)
		assert.Equal(t, Step, cur.Sub(prev), "point %d should be one week after its predecessor", i)
	}
}

func TestGenerate_Bounds(t *testing.T) {
	params := DefaultParams()

	for seed := uint64(0); seed < 20; seed++ {
		points := Generate(params, seed)
		for i, p := range points {
			assert.GreaterOrEqual(t, p.Transactions, 100000)
			assert.Less(t, p.Transactions, 150000)

			assert.GreaterOrEqual(t, p.ActiveAgents, 2000+i*15)
			assert.Less(t, p.ActiveAgents, 2500+i*15)

			assert.True(t, p.GDP.IsPositive(), "GDP must stay positive")
			assert.True(t, p.TVL.IsPositive(), "TVL must stay positive")
			assert.True(t, p.GDP.Equal(p.GDP.Round(2)), "GDP must carry at most two decimals")
			assert.True(t, p.TVL.Equal(p.TVL.Round(2)), "TVL must carry at most two decimals")
		}
	}
}

func TestGenerate_GrowthStaysInRange(t *testing.T) {
	params := DefaultParams()
	points := Generate(params, 7)

	// Rounding to cents allows a small slack around the configured bounds.
	slack := decimal.NewFromFloat(0.02)
	prev := decimal.NewFromFloat(params.StartGDP)
	for _, p := range points {
		low := prev.Mul(decimal.NewFromFloat(1 + params.GrowthMin)).Sub(slack)
		high := prev.Mul(decimal.NewFromFloat(1 + params.GrowthMax)).Add(slack)
		assert.True(t, p.GDP.GreaterThanOrEqual(low), "%s below %s", p.GDP, low)
		assert.True(t, p.GDP.LessThanOrEqual(high), "%s above %s", p.GDP, high)
		prev = p.GDP
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	params := DefaultParams()

	a := Generate(params, 1234)
	b := Generate(params, 1234)
	c := Generate(params, 1235)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerate_InjectedSource(t *testing.T) {
	params := DefaultParams()
	params.Weeks = 3
	params.GrowthMin = 0.1
	params.GrowthMax = 0.1
	params.TVLNoise = 0

	g := New(params, rand.New(rand.NewPCG(1, 2)))
	points := g.Generate()

	require.Len(t, points, 3)
	assert.Equal(t, "13.75", points[0].GDP.StringFixed(2))
	assert.Equal(t, "15.13", points[1].GDP.StringFixed(2))
	assert.Equal(t, "16.64", points[2].GDP.StringFixed(2))
	assert.Equal(t, "4.13", points[0].TVL.StringFixed(2))
}

func TestGenerate_CustomStart(t *testing.T) {
	params := DefaultParams()
	params.Start = time.Date(2025, time.March, 3, 15, 0, 0, 0, time.UTC)
	params.Weeks = 4

	points := Generate(params, 9)
	require.Len(t, points, 4)
	assert.Equal(t, "Mar 3", points[0].Label)
	assert.Equal(t, "2025-03-24", points[3].Date)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr bool
	}{
		{name: "defaults", mutate: func(p *Params) {}},
		{name: "too few weeks", mutate: func(p *Params) { p.Weeks = 1 }, wantErr: true},
		{name: "non-positive start", mutate: func(p *Params) { p.StartGDP = 0 }, wantErr: true},
		{name: "inverted growth", mutate: func(p *Params) { p.GrowthMin, p.GrowthMax = 0.2, 0.1 }, wantErr: true},
		{name: "collapsing growth", mutate: func(p *Params) { p.GrowthMin = -1 }, wantErr: true},
		{name: "negative ratio", mutate: func(p *Params) { p.TVLRatio = -0.1 }, wantErr: true},
		{name: "empty span", mutate: func(p *Params) { p.TxSpan = 0 }, wantErr: true},
		{name: "zero start", mutate: func(p *Params) { p.Start = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
