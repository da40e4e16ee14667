// Package leaderboard provides the top performing agents table.
package leaderboard

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yourorg/agent-gdp/internal/model"
)

func entry(name, address, revenue string, txs int, change string) model.AgentRanking {
	return model.AgentRanking{
		Name:            name,
		Address:         address,
		RevenueMillions: decimal.RequireFromString(revenue),
		Transactions:    txs,
		Change24h:       decimal.RequireFromString(change),
	}
}

var topAgents = []model.AgentRanking{
	entry("AutoTrader-X7", "0x7f3...a4b2", "2.3", 45200, "15.3"),
	entry("YieldHarvest", "0x1c9...f8e1", "1.8", 38700, "12.1"),
	entry("LiquidityBot", "0x3d2...c7a9", "1.4", 29400, "8.7"),
	entry("ArbitrageAgent", "0x9e5...d2f3", "1.1", 67800, "22.4"),
	entry("NFTScout", "0x6b8...e1c4", "0.9", 15200, "5.2"),
}

// Top returns the n highest-revenue agents, highest first. n <= 0 returns all.
func Top(n int) []model.AgentRanking {
	out := make([]model.AgentRanking, len(topAgents))
	copy(out, topAgents)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RevenueMillions.GreaterThan(out[j].RevenueMillions)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
