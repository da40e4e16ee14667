// Command gdpctl fetches a dashboard snapshot from a running server and prints a summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/config"
	"github.com/yourorg/agent-gdp/internal/fetch"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

func main() {
	config.LoadDotEnv()

	var (
		baseURL = flag.String("url", config.GetEnvOrDefault("GDP_URL", "http://localhost:8080"), "dashboard server base URL")
		tfFlag  = flag.String("tf", timeframe.Default.String(), "timeframe: 1M, 3M, 6M or 1Y")
		seed    = flag.Uint64("seed", 0, "series seed (omit to let the server choose)")
		timeout = flag.Duration("timeout", 15*time.Second, "overall request timeout")
		asJSON  = flag.Bool("json", false, "print the raw snapshot as JSON")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	tf, err := timeframe.Parse(*tfFlag)
	if err != nil {
		logrus.Fatalf("Invalid -tf: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	snap, err := fetch.NewClient(*baseURL).Snapshot(ctx, tf, requestedSeed(flag.CommandLine, *seed))
	if err != nil {
		logrus.Fatalf("Failed to fetch snapshot: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			logrus.Fatalf("Failed to encode snapshot: %v", err)
		}
		return
	}

	if err := printSummary(os.Stdout, snap); err != nil {
		logrus.Fatalf("Failed to print summary: %v", err)
	}
}

// requestedSeed returns seed when -seed was given on the command line, nil otherwise.
func requestedSeed(fs *flag.FlagSet, seed uint64) *uint64 {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			set = true
		}
	})
	if !set {
		return nil
	}
	return &seed
}

// printSummary writes a human readable overview of snap.
func printSummary(out io.Writer, snap model.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "AGENT GDP\tseed %d\ttimeframe %s\n", snap.Seed, snap.Timeframe)
	fmt.Fprintf(w, "fingerprint\t%s\t\n\n", snap.Fingerprint)

	for _, card := range snap.Stats {
		fmt.Fprintf(w, "%s\t%s%s\t%s\n", card.Title, card.Value, card.Unit, card.Change)
	}

	s := snap.Summary
	fmt.Fprintf(w, "\nwindow\t%d weeks\t\n", s.Points)
	fmt.Fprintf(w, "mean GDP\t%sM\t\n", view.Millions(s.MeanGDP))
	fmt.Fprintf(w, "median GDP\t%sM\t\n", view.Millions(s.MedianGDP))
	fmt.Fprintf(w, "range\t%sM - %sM\t\n", view.Millions(s.MinGDP), view.Millions(s.MaxGDP))
	fmt.Fprintf(w, "growth\t%s\t\n", view.Percent(s.GDPGrowth))
	fmt.Fprintf(w, "transactions\t%s\t\n\n", view.Count(int(s.TotalTxs)))

	for _, p := range snap.Protocols {
		fmt.Fprintf(w, "%s\t%.1f%%\t\n", p.Name, p.Share)
	}
	fmt.Fprintln(w)

	for i, a := range snap.Leaderboard {
		fmt.Fprintf(w, "%d. %s\t%sM\t%s\t%s\n", i+1, a.Name, view.Millions(a.RevenueMillions), view.Thousands(a.Transactions), view.Percent(a.Change24h))
	}

	return w.Flush()
}
