package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/premier-league/internal/app"
	"github.com/riskibarqy/premier-league/internal/config"
	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/infrastructure/statscsv"
	"github.com/riskibarqy/premier-league/internal/platform/logging"
	"github.com/riskibarqy/premier-league/internal/usecase"
)

type options struct {
	file   string
	team   string
	date   string
	dryRun bool
}

type summary struct {
	File       string   `json:"file"`
	DryRun     bool     `json:"dryRun"`
	Total      int      `json:"total"`
	Inserted   int      `json:"inserted"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
	DurationMs int64    `json:"durationMs"`
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: logging.FormatForEnv(cfg.AppEnv), Output: os.Stderr})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed, err := run(ctx, cfg, logger, opts, os.Stdout)
	if err != nil {
		logger.Error("player import failed", "file", opts.file, "error", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(3)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.file, "file", "", "path to the stats CSV export (required)")
	fs.StringVar(&opts.team, "team", "", "team applied to rows without a team column")
	fs.StringVar(&opts.date, "date", "", "snapshot date (YYYY-MM-DD) applied to rows without a date column")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "parse and report without writing")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.file = strings.TrimSpace(opts.file)
	if opts.file == "" {
		return options{}, fmt.Errorf("--file is required")
	}
	if opts.date != "" {
		if _, err := player.ParseDate(opts.date); err != nil {
			return options{}, fmt.Errorf("invalid --date: %w", err)
		}
	}

	return opts, nil
}

// run imports opts.file and writes a JSON summary to out. It returns the
// number of rows that failed.
func run(ctx context.Context, cfg config.Config, logger *logging.Logger, opts options, out io.Writer) (int, error) {
	parseOpts := statscsv.Options{Team: strings.TrimSpace(opts.team)}
	if opts.date != "" {
		date, err := player.ParseDate(opts.date)
		if err != nil {
			return 0, fmt.Errorf("parse date: %w", err)
		}
		parseOpts.Date = &date
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	batch, err := statscsv.Parse(f, parseOpts)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", opts.file, err)
	}

	// A dry run never writes, so it does not need storage or the event broker.
	imports := usecase.NewImportService(nil, cfg.ImportWorkers, logger)
	if !opts.dryRun {
		application, err := app.New(ctx, cfg, logger)
		if err != nil {
			return 0, fmt.Errorf("build app: %w", err)
		}
		defer func() { _ = application.Close() }()
		imports = application.Imports
	}

	result, err := imports.Import(ctx, usecase.ImportInput{Batch: batch, DryRun: opts.dryRun})
	if err != nil {
		return 0, err
	}

	s := summary{
		File:       opts.file,
		DryRun:     opts.dryRun,
		Total:      result.Total,
		Inserted:   result.Inserted,
		Failed:     result.Failed,
		DurationMs: result.DurationMs,
	}
	for _, rowErr := range result.Errors {
		s.Errors = append(s.Errors, rowErr.Error())
	}

	encoded, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode import summary: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(encoded)); err != nil {
		return 0, fmt.Errorf("write import summary: %w", err)
	}

	return result.Failed, nil
}
