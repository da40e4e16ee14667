package render

import (
	"fmt"
	"time"

	"github.com/yourorg/agent-gdp/internal/aggregate"
	"github.com/yourorg/agent-gdp/internal/leaderboard"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/protocol"
	"github.com/yourorg/agent-gdp/internal/security"
	"github.com/yourorg/agent-gdp/internal/view"
)

// NewSnapshot assembles the JSON payload for a seeded series and view.
// The fingerprint covers everything except GeneratedAt, so the same seed and
// timeframe always produce the same fingerprint.
func NewSnapshot(seed uint64, points []model.MetricPoint, state view.State, now time.Time) (model.Snapshot, error) {
	window, err := state.Window(points)
	if err != nil {
		return model.Snapshot{}, err
	}
	cards, err := view.StatCards(points)
	if err != nil {
		return model.Snapshot{}, err
	}

	snap := model.Snapshot{
		Seed:        seed,
		Timeframe:   state.Timeframe.String(),
		Points:      points,
		Window:      window,
		Stats:       cards,
		Summary:     aggregate.Summarize(window),
		Protocols:   protocol.Shares(),
		Leaderboard: leaderboard.Top(0),
	}

	fp, err := SnapshotFingerprint(snap)
	if err != nil {
		return model.Snapshot{}, err
	}
	snap.Fingerprint = fp
	snap.GeneratedAt = now.Unix()
	return snap, nil
}

// SnapshotFingerprint hashes snap with its volatile fields cleared.
func SnapshotFingerprint(snap model.Snapshot) (string, error) {
	snap.GeneratedAt = 0
	snap.Fingerprint = ""
	fp, err := security.Fingerprint(snap)
	if err != nil {
		return "", fmt.Errorf("fingerprint snapshot: %w", err)
	}
	return fp, nil
}
