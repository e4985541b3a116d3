// cmd/collab-cli/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"collab-workers/internal/collaboration"
	"collab-workers/internal/common/config"
	"collab-workers/internal/common/logger"
	"collab-workers/internal/ingestion"
	"collab-workers/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	input      string
	configPath string
	format     string
	limit      int
	logLevel   string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("collab-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.input, "input", "", "CSV file with employeeId, projectId, dateFrom, dateTo rows (- for stdin)")
	fs.StringVar(&opts.configPath, "config", "", "Optional YAML config file")
	fs.StringVar(&opts.format, "format", "table", "Output format: table or json")
	fs.IntVar(&opts.limit, "limit", 0, "Show at most this many pairs (0 = config default, all when unset)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Override logging.level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.input == "" {
		fs.Usage()
		return nil, fmt.Errorf("-input is required")
	}
	if opts.format != "table" && opts.format != "json" {
		return nil, fmt.Errorf("unsupported format %q", opts.format)
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Defaults()
	}
	return config.LoadFromFile(path)
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	// stdout carries the report, so logs go to stderr.
	zapLog := logger.NewWithOptions(logger.Options{Level: level, Format: "console", Output: "stderr"})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	in := io.Reader(os.Stdin)
	if opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	parsed, err := ingestion.ParseCSV(in, ingestion.ParseOptions{
		DateLayouts:       cfg.Ingestion.DateLayouts,
		MissingEndAsToday: cfg.Ingestion.MissingEndAsToday,
		Logger:            log,
	})
	if err != nil {
		return err
	}
	log.Info("Input parsed", map[string]interface{}{
		"intervals":  len(parsed.Intervals),
		"skipped":    len(parsed.Skipped),
		"duplicates": parsed.Duplicates,
	})

	pipeline := collaboration.NewPipeline(
		collaboration.WithMaxWorkers(cfg.Collaboration.MaxWorkers),
		collaboration.WithLogger(log),
	)
	outcome := pipeline.Execute(context.Background(), parsed.Intervals)

	limit := cfg.Collaboration.ResultLimit
	if opts.limit > 0 {
		limit = opts.limit
	}
	result := outcome.Result.Limit(limit)

	if opts.format == "json" {
		return report.WriteJSON(stdout, outcome.RunID, result)
	}
	if _, err := fmt.Fprintln(stdout, report.Headline(result)); err != nil {
		return err
	}
	if result.Empty() {
		return nil
	}
	fmt.Fprintln(stdout)
	return report.WriteTable(stdout, result)
}
