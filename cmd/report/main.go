package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"ordercli/internal/config"
	"ordercli/internal/exporter"
	"ordercli/pkg/contracts/domain"
)

func main() {
	baseDir := flag.String("base", "", "base directory of a completed run (defaults to the executable directory)")
	metaPath := flag.String("meta", "", "run metadata file (overrides -base)")
	flag.Parse()

	if err := run(*baseDir, *metaPath, os.Stdout); err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(baseDir, metaPath string, out io.Writer) error {
	paths, err := config.GetPaths(baseDir)
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}
	if metaPath == "" {
		metaPath = paths.RunMetaJSON
	}

	meta, err := exporter.ReadRunMeta(metaPath)
	if err != nil {
		return fmt.Errorf("no run metadata found (has the etl command run?): %w", err)
	}

	printRunReport(out, meta)

	summaryPath := paths.RevenueSummaryCSV
	if rows, err := readCSV(summaryPath); err == nil && len(rows) > 1 {
		printRevenueTable(out, rows)
	}

	return nil
}

func printRunReport(out io.Writer, meta *domain.RunMeta) {
	fmt.Fprintf(out, "Run %s (%s)\n", meta.RunID, meta.Status)
	fmt.Fprintf(out, "  started:  %s\n", meta.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "  finished: %s\n", meta.FinishedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  rows in:  %d orders, %d users\n", meta.RowsOrdersRaw, meta.RowsUsers)
	fmt.Fprintf(out, "  rows out: %d\n", meta.RowsAnalytics)
	fmt.Fprintf(out, "  dropped:  %d missing, %d duplicate, %d unmatched (drop rate %.3f)\n",
		meta.DroppedMissing, meta.DroppedDuplicates, meta.DroppedUnmatched, meta.DropRate)
	fmt.Fprintf(out, "  join coverage: %.3f\n", meta.JoinCoverage)
	fmt.Fprintf(out, "  winsor bounds: [%.2f, %.2f], %d amounts clamped\n",
		meta.WinsorLowerBound, meta.WinsorUpperBound, meta.AmountsClamped)

	if len(meta.Warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  warnings:")
		for _, w := range meta.Warnings {
			fmt.Fprintf(out, "    - %s\n", w)
		}
	}

	if len(meta.Outputs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  outputs:")
		names := make([]string, 0, len(meta.Outputs))
		for name := range meta.Outputs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "    %s: %s\n", name, meta.Outputs[name])
		}
	}
}

func printRevenueTable(out io.Writer, rows [][]string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  revenue by country:")
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		country := row[0]
		if country == "" {
			country = "(unmatched)"
		}
		fmt.Fprintf(out, "    %-12s %6s orders  %12s total  %10s avg\n",
			country, row[1], row[2], row[3])
	}
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	return csv.NewReader(strings.NewReader(content)).ReadAll()
}
