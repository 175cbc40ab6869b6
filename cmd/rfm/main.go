package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/MrJamesThe3rd/rfm/internal/config"
	"github.com/MrJamesThe3rd/rfm/internal/database"
	"github.com/MrJamesThe3rd/rfm/internal/importer"
	"github.com/MrJamesThe3rd/rfm/internal/retail/store"
	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

type options struct {
	asOf       time.Time
	input      string
	format     importer.Format
	dsn        string
	table      string
	persist    bool
	out        string
	segment    rfm.Segment
	segmentOut string
	summary    bool
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		asOfFlag   = flag.String("as-of", cfg.RFM.AsOf, "reference date for recency, YYYY-MM-DD (required)")
		input      = flag.String("input", cfg.RFM.Input, "ledger export to read; empty reads DB_DSN instead")
		format     = flag.String("format", cfg.RFM.Format, "ledger export format: csv or tsv")
		dsn        = flag.String("dsn", cfg.DB.DSN, "postgres://, mysql:// or mariadb:// URL of the ledger database")
		tableName  = flag.String("table", cfg.DB.Table, "ledger table name")
		persist    = flag.Bool("csv", false, "write the segmentation to -out")
		out        = flag.String("out", cfg.RFM.Output, "segmentation CSV path")
		segment    = flag.String("segment", "", "write the ids of this segment to -segment-out")
		segmentOut = flag.String("segment-out", "", "segment id CSV path, defaults to <segment>.csv")
		summary    = flag.Bool("summary", true, "print per-segment statistics")
	)

	flag.Parse()

	asOf, err := config.ParseAsOf(*asOfFlag)
	if err != nil {
		slog.Error("invalid as-of date", "error", err)
		os.Exit(1)
	}

	opts := options{
		asOf:       asOf,
		input:      *input,
		format:     importer.Format(*format),
		dsn:        *dsn,
		table:      *tableName,
		persist:    *persist,
		out:        *out,
		segment:    rfm.Segment(*segment),
		segmentOut: *segmentOut,
		summary:    *summary,
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		slog.Error("rfm failed", "error", err)
		os.Exit(1)
	}
}

// run opens the configured source and segments it. The source is closed on
// every return path.
func run(ctx context.Context, opts options, stdout io.Writer) error {
	if opts.segment != "" && !rfm.KnownSegment(opts.segment) {
		return fmt.Errorf("unknown segment %q", opts.segment)
	}

	src, closeSrc, err := openSource(ctx, opts.input, opts.format, opts.dsn, opts.table)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer closeSrc()

	bar := progressbar.Default(3, "loading")

	txs, err := src.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	_ = bar.Add(1)
	bar.Describe("segmenting")

	res, err := rfm.Run(txs, opts.asOf)
	if err != nil {
		return fmt.Errorf("segmenting: %w", err)
	}

	_ = bar.Add(1)
	bar.Describe("writing")

	if opts.persist {
		if err := writeFile(opts.out, func(w io.Writer) error { return rfm.WriteCSV(w, res.Customers) }); err != nil {
			return fmt.Errorf("writing segmentation to %s: %w", opts.out, err)
		}
	}

	if opts.segment != "" {
		path := opts.segmentOut
		if path == "" {
			path = string(opts.segment) + ".csv"
		}

		if err := writeFile(path, func(w io.Writer) error { return rfm.WriteSegmentIDs(w, res.Customers, opts.segment) }); err != nil {
			return fmt.Errorf("writing segment ids to %s: %w", path, err)
		}
	}

	_ = bar.Add(1)
	_ = bar.Finish()

	slog.Info("run complete",
		"run_id", res.RunID,
		"as_of", opts.asOf.Format(time.DateOnly),
		"transactions", res.Stats.Transactions,
		"line_items", res.Stats.LineItems,
		"customers", len(res.Customers),
		"non_positive", res.Stats.NonPositive,
	)

	if opts.summary {
		fmt.Fprintln(stdout, summaryTable(rfm.Summarize(res.Customers)))
	}

	return nil
}

func openSource(ctx context.Context, input string, format importer.Format, dsn, tableName string) (rfm.Source, func(), error) {
	if input != "" {
		return importer.NewFileSource(importer.NewService(), input, format), func() {}, nil
	}

	if dsn == "" {
		return nil, nil, fmt.Errorf("either -input or -dsn is required")
	}

	db, err := database.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(db, tableName)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return st, func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func summaryTable(summaries []rfm.SegmentSummary) *table.Table {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Segment),
			fmt.Sprintf("%d", s.Customers),
			fmt.Sprintf("%.1f", s.Recency.Mean),
			fmt.Sprintf("%.1f", s.Frequency.Mean),
			fmt.Sprintf("%.2f", s.Monetary.Mean),
			fmt.Sprintf("%.2f", s.Monetary.Median),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("segment", "customers", "recency", "frequency", "monetary", "median monetary").
		Rows(rows...)
}
