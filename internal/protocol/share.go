// Package protocol holds the static protocol share distribution.
package protocol

import (
	"fmt"
	"math"

	"github.com/yourorg/agent-gdp/internal/model"
)

// SumTolerance is the allowed deviation of the share total from 100.
const SumTolerance = 0.1

var defaultShares = []model.ProtocolShare{
	{Name: "Autonolas", Share: 34.2, Color: "#00F0FF"},
	{Name: "Fetch.ai", Share: 28.1, Color: "#FF00AA"},
	{Name: "SingularityNET", Share: 18.5, Color: "#39FF14"},
	{Name: "Ocean Protocol", Share: 12.3, Color: "#FFB800"},
	{Name: "Others", Share: 6.9, Color: "#8B5CF6"},
}

// Shares returns a copy of the protocol distribution.
func Shares() []model.ProtocolShare {
	out := make([]model.ProtocolShare, len(defaultShares))
	copy(out, defaultShares)
	return out
}

// Total sums the share percentages.
func Total(shares []model.ProtocolShare) float64 {
	var total float64
	for _, s := range shares {
		total += s.Share
	}
	return total
}

// Validate checks the individual shares and that they add up to 100.
func Validate(shares []model.ProtocolShare) error {
	seen := make(map[string]bool, len(shares))
	for _, s := range shares {
		if s.Name == "" {
			return fmt.Errorf("protocol share without a name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate protocol %q", s.Name)
		}
		seen[s.Name] = true
		if s.Share < 0 || s.Share > 100 {
			return fmt.Errorf("protocol %q share out of range: %.2f", s.Name, s.Share)
		}
	}
	if total := Total(shares); math.Abs(total-100) > SumTolerance {
		return fmt.Errorf("protocol shares sum to %.2f, want 100", total)
	}
	return nil
}

// Find returns the share with the given name.
func Find(shares []model.ProtocolShare, name string) (model.ProtocolShare, bool) {
	for _, s := range shares {
		if s.Name == name {
			return s, true
		}
	}
	return model.ProtocolShare{}, false
}
