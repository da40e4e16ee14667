// Package model defines the core data structures for the agent GDP dashboard.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO layout used for MetricPoint.Date.
const DateLayout = "2006-01-02"

// LabelLayout renders the short axis label, e.g. "Jan 8".
const LabelLayout = "Jan 2"

// MetricPoint is one weekly observation of the synthetic agent economy.
// Points are immutable once generated.
type MetricPoint struct {
	// Label is the short display date ("Jan 8")
	Label string `json:"date"`

	// Date is the ISO date of the week start
	Date string `json:"fullDate"`

	// GDP is the aggregate value in millions, rounded to two decimals
	GDP decimal.Decimal `json:"gdp"`

	Transactions int `json:"transactions"`
	ActiveAgents int `json:"activeAgents"`

	// TVL is the value locked in millions, rounded to two decimals
	TVL decimal.Decimal `json:"tvl"`
}

// NewMetricPoint builds a point for the given day, deriving both date renderings.
func NewMetricPoint(day time.Time, gdp decimal.Decimal, transactions, activeAgents int, tvl decimal.Decimal) MetricPoint {
	return MetricPoint{
		Label:        day.Format(LabelLayout),
		Date:         day.Format(DateLayout),
		GDP:          gdp,
		Transactions: transactions,
		ActiveAgents: activeAgents,
		TVL:          tvl,
	}
}

// Time parses the ISO date back into a time.Time (UTC).
func (p MetricPoint) Time() (time.Time, error) {
	return time.Parse(DateLayout, p.Date)
}

// ProtocolShare is a slice of the protocol distribution chart.
type ProtocolShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"value"`
	Color string  `json:"color"`
}

// AgentRanking is a row of the top performing agents table.
type AgentRanking struct {
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	RevenueMillions decimal.Decimal `json:"revenue"`
	Transactions    int             `json:"txs"`
	Change24h       decimal.Decimal `json:"change"`
}

// StatCard is a headline figure with its week-over-week change.
type StatCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Unit   string `json:"unit,omitempty"`
	Change string `json:"change"`

	// Positive is true when the change is zero or above
	Positive bool `json:"positive"`
}

// WindowStats summarises a selected window of the series.
type WindowStats struct {
	Points     int             `json:"points"`
	MeanGDP    decimal.Decimal `json:"meanGdp"`
	MedianGDP  decimal.Decimal `json:"medianGdp"`
	MinGDP     decimal.Decimal `json:"minGdp"`
	MaxGDP     decimal.Decimal `json:"maxGdp"`
	GDPGrowth  decimal.Decimal `json:"gdpGrowthPct"`
	TotalTxs   int64           `json:"totalTransactions"`
	MeanAgents float64         `json:"meanActiveAgents"`
}

// Snapshot is the JSON payload served for one generated series and view.
type Snapshot struct {
	Seed        uint64          `json:"seed"`
	Timeframe   string          `json:"timeframe"`
	GeneratedAt int64           `json:"generatedAt"`
	Points      []MetricPoint   `json:"points"`
	Window      []MetricPoint   `json:"window"`
	Stats       []StatCard      `json:"stats"`
	Summary     WindowStats     `json:"summary"`
	Protocols   []ProtocolShare `json:"protocols"`
	Leaderboard []AgentRanking  `json:"leaderboard"`
	Fingerprint string          `json:"fingerprint,omitempty"`
}
