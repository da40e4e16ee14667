// Package series generates the synthetic weekly agent economy series.
package series

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/model"
)

// Step is the spacing between two consecutive points.
const Step = 7 * 24 * time.Hour

// Params holds the tuning constants of the random walk.
type Params struct {
	// Start is the date of the first point
	Start time.Time

	// StartGDP is the running GDP value before the first step, in millions
	StartGDP float64

	// Weeks is the number of points produced
	Weeks int

	// GrowthMin and GrowthMax bound the per-step multiplicative growth rate
	GrowthMin float64
	GrowthMax float64

	// TVL = GDP*TVLRatio + U[0, TVLNoise)
	TVLRatio float64
	TVLNoise float64

	// Transactions = TxBase + U{0..TxSpan-1}
	TxBase int
	TxSpan int

	// ActiveAgents = AgentsBase + U{0..AgentsSpan-1} + week*AgentsStep
	AgentsBase int
	AgentsSpan int
	AgentsStep int
}

// DefaultParams returns the constants the dashboard ships with.
func DefaultParams() Params {
	return Params{
		Start:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		StartGDP:   12.5,
		Weeks:      52,
		GrowthMin:  -0.02,
		GrowthMax:  0.13,
		TVLRatio:   0.3,
		TVLNoise:   5,
		TxBase:     100000,
		TxSpan:     50000,
		AgentsBase: 2000,
		AgentsSpan: 500,
		AgentsStep: 15,
	}
}

// Validate rejects parameter sets the generator cannot honour.
func (p Params) Validate() error {
	switch {
	case p.Weeks < 2:
		return fmt.Errorf("weeks must be at least 2, got %d", p.Weeks)
	case p.StartGDP <= 0:
		return fmt.Errorf("start GDP must be positive, got %f", p.StartGDP)
	case p.GrowthMin > p.GrowthMax:
		return fmt.Errorf("growth range inverted: %f > %f", p.GrowthMin, p.GrowthMax)
	case p.GrowthMin <= -1:
		return fmt.Errorf("growth minimum %f would drive GDP to zero", p.GrowthMin)
	case p.TVLRatio < 0 || p.TVLNoise < 0:
		return errors.New("TVL ratio and noise must not be negative")
	case p.TxSpan <= 0 || p.AgentsSpan <= 0:
		return errors.New("transaction and agent spans must be positive")
	case p.TxBase < 0 || p.AgentsBase < 0 || p.AgentsStep < 0:
		return errors.New("transaction and agent bases must not be negative")
	case p.Start.IsZero():
		return errors.New("start date is required")
	}
	return nil
}

// Generator produces series from an injected random source.
// A Generator is not safe for concurrent use; create one per series.
type Generator struct {
	params Params
	rng    *rand.Rand
}

// New creates a generator drawing from rng.
func New(params Params, rng *rand.Rand) *Generator {
	return &Generator{params: params, rng: rng}
}

// NewSeeded creates a generator whose output is fully determined by seed.
func NewSeeded(params Params, seed uint64) *Generator {
	return New(params, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewSeed draws a fresh seed from the randomly seeded global source.
func NewSeed() uint64 {
	return rand.Uint64()
}

// Params returns the generator's parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Generate walks the GDP recurrence and returns Weeks points in ascending date order.
// The running GDP stays unrounded; only stored values are rounded to two decimals.
func (g *Generator) Generate() []model.MetricPoint {
	p := g.params
	start := p.Start.UTC()
	points := make([]model.MetricPoint, 0, p.Weeks)

	gdp := p.StartGDP
	for i := 0; i < p.Weeks; i++ {
		day := start.AddDate(0, 0, i*7)

		growth := p.GrowthMin + g.rng.Float64()*(p.GrowthMax-p.GrowthMin)
		gdp *= 1 + growth

		transactions := p.TxBase + g.rng.IntN(p.TxSpan)
		agents := p.AgentsBase + g.rng.IntN(p.AgentsSpan) + i*p.AgentsStep
		tvl := gdp*p.TVLRatio + g.rng.Float64()*p.TVLNoise

		points = append(points, model.NewMetricPoint(day, round2(gdp), transactions, agents, round2(tvl)))
	}

	logrus.WithFields(logrus.Fields{
		"points": len(points),
		"start":  start.Format(model.DateLayout),
		"gdp":    gdp,
	}).Debug("Generated series")

	return points
}

// Generate is a convenience for a one-off seeded series.
func Generate(params Params, seed uint64) []model.MetricPoint {
	return NewSeeded(params, seed).Generate()
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
