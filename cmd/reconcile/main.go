// Command reconcile runs one matching pass from the command line: parse a
// normalized statement CSV, pull unreconciled candidates from the ledger,
// and print the proposed alignment. Review and commit happen through the
// API server; this binary is for dry runs and batch inspection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/logistiga/bank-reconciliation/internal/infrastructure/config"
	"github.com/logistiga/bank-reconciliation/internal/infrastructure/logging"
	"github.com/logistiga/bank-reconciliation/internal/infrastructure/storage"
	"github.com/logistiga/bank-reconciliation/internal/recon"
	"github.com/logistiga/bank-reconciliation/internal/statement"
)

const dateLayout = "2006-01-02"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	statementPath := flag.String("statement", "", "path to normalized statement CSV (required)")
	fromStr := flag.String("from", "", "candidate window start (YYYY-MM-DD)")
	toStr := flag.String("to", "", "candidate window end (YYYY-MM-DD)")
	asJSON := flag.Bool("json", false, "dump the full reconciliation batch as JSON to stdout")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "reconcile")

	if *statementPath == "" {
		logger.Error("missing -statement flag")
		flag.Usage()
		os.Exit(2)
	}

	from, err := parseDate(*fromStr)
	if err != nil {
		logger.Error("invalid -from date", "error", err)
		os.Exit(2)
	}
	to, err := parseDate(*toStr)
	if err != nil {
		logger.Error("invalid -to date", "error", err)
		os.Exit(2)
	}

	file, err := os.Open(*statementPath)
	if err != nil {
		logger.Error("open statement", "path", *statementPath, "error", err)
		os.Exit(1)
	}
	lines, err := statement.ParseCSV(file)
	_ = file.Close()
	if err != nil {
		logger.Error("parse statement", "path", *statementPath, "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("open ledger database", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	candidates, err := repo.ListUnreconciled(ctx, from, to)
	if err != nil {
		logger.Error("list candidates", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	batch, err := recon.MatchContext(ctx, lines, candidates)
	if err != nil {
		logger.Error("match", "error", err)
		os.Exit(1)
	}

	stats := recon.Summarize(batch)
	logger.Info("matching complete",
		"lines", stats.Total,
		"candidates", len(candidates),
		"matched", stats.MatchedCount,
		"partial", stats.PartialCount,
		"unmatched", stats.UnmatchedCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch); err != nil {
			logger.Error("encode batch", "error", err)
			os.Exit(1)
		}
		return
	}

	for _, r := range batch {
		switch r.Status {
		case recon.StatusUnmatched:
			fmt.Printf("%-10s  %s  %10s  %-40s  -> no match (confidence %d)\n",
				r.Line.ID, r.Line.Date.Format(dateLayout), r.Line.Amount, truncate(r.Line.Label, 40), r.Confidence)
		default:
			fmt.Printf("%-10s  %s  %10s  %-40s  -> %s (%s, confidence %d)\n",
				r.Line.ID, r.Line.Date.Format(dateLayout), r.Line.Amount, truncate(r.Line.Label, 40),
				r.Match.ID, r.Status, r.Confidence)
		}
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
