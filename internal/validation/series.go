// Package validation checks generated series against the generator's invariants.
package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/series"
)

// Options holds the bounds a series must respect.
type Options struct {
	// Weeks is the exact expected length
	Weeks int

	// Start is the date of the first point
	Start time.Time

	// Transactions must lie in [MinTransactions, MaxTransactions)
	MinTransactions int
	MaxTransactions int

	// ActiveAgents at index i must be at least MinAgents + i*AgentsStep
	MinAgents  int
	AgentsStep int
}

// OptionsFromParams derives the bounds implied by generator parameters.
func OptionsFromParams(p series.Params) Options {
	return Options{
		Weeks:           p.Weeks,
		Start:           p.Start.UTC(),
		MinTransactions: p.TxBase,
		MaxTransactions: p.TxBase + p.TxSpan,
		MinAgents:       p.AgentsBase,
		AgentsStep:      p.AgentsStep,
	}
}

// DefaultOptions returns the bounds of the default generator.
func DefaultOptions() Options {
	return OptionsFromParams(series.DefaultParams())
}

// Violation describes one broken invariant.
type Violation struct {
	Index  int
	Reason string
}

func (v Violation) Error() string {
	if v.Index < 0 {
		return v.Reason
	}
	return fmt.Sprintf("point %d: %s", v.Index, v.Reason)
}

// Violations lists every invariant the series breaks.
func Violations(points []model.MetricPoint, opts Options) []Violation {
	var out []Violation
	add := func(i int, format string, args ...interface{}) {
		out = append(out, Violation{Index: i, Reason: fmt.Sprintf(format, args...)})
	}

	if opts.Weeks > 0 && len(points) != opts.Weeks {
		add(-1, "expected %d points, got %d", opts.Weeks, len(points))
	}

	var prev time.Time
	for i, p := range points {
		day, err := p.Time()
		if err != nil {
			add(i, "unparseable date %q", p.Date)
			continue
		}
		if i == 0 && !opts.Start.IsZero() {
			want := time.Date(opts.Start.Year(), opts.Start.Month(), opts.Start.Day(), 0, 0, 0, 0, time.UTC)
			if !day.Equal(want) {
				add(i, "series starts on %s, want %s", p.Date, want.Format(model.DateLayout))
			}
		}
		if i > 0 && !prev.IsZero() && day.Sub(prev) != series.Step {
			add(i, "gap of %s after previous point", day.Sub(prev))
		}
		prev = day

		if p.Transactions < opts.MinTransactions || p.Transactions >= opts.MaxTransactions {
			add(i, "transactions %d outside [%d, %d)", p.Transactions, opts.MinTransactions, opts.MaxTransactions)
		}
		if minAgents := opts.MinAgents + i*opts.AgentsStep; p.ActiveAgents < minAgents {
			add(i, "active agents %d below %d", p.ActiveAgents, minAgents)
		}
		if !p.GDP.IsPositive() {
			add(i, "GDP %s is not positive", p.GDP)
		}
		if p.TVL.IsNegative() {
			add(i, "TVL %s is negative", p.TVL)
		}
	}

	return out
}

// CheckSeries returns nil when the series satisfies opts, or all violations joined.
func CheckSeries(points []model.MetricPoint, opts Options) error {
	violations := Violations(points, opts)
	if len(violations) == 0 {
		return nil
	}

	errs := make([]error, 0, len(violations))
	for _, v := range violations {
		logrus.WithFields(logrus.Fields{
			"index":  v.Index,
			"reason": v.Reason,
		}).Debug("Series violation")
		errs = append(errs, v)
	}

	logrus.WithFields(logrus.Fields{
		"total":      len(points),
		"violations": len(violations),
	}).Warn("Series failed validation")

	return errors.Join(errs...)
}
