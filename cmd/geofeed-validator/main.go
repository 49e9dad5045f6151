// Package main implements the geofeed-validator CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	geofeed "github.com/geofeed/validator"
	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/config"
	"github.com/geofeed/validator/pkg/fetch"
	"github.com/geofeed/validator/pkg/logger"
	"github.com/geofeed/validator/pkg/registry"
	"github.com/geofeed/validator/pkg/report"
	"github.com/geofeed/validator/pkg/result"
	"github.com/geofeed/validator/pkg/worker"
)

// Exit codes.
const (
	exitValid   = 0
	exitInvalid = 3
	exitError   = 4
)

const usage = `geofeed-validator - IP geolocation feed validator

Usage:
  geofeed-validator [options] <source>...

A source is an http(s) URL, a file path, or "-" for standard input.
Several sources are validated in parallel.

Examples:
  geofeed-validator https://example.com/geofeed.csv
  geofeed-validator -t draft02 geofeed.csv
  geofeed-validator -o json geofeed.csv
  cat geofeed.csv | geofeed-validator -q -
  geofeed-validator -j 8 feeds/*.csv

Options:
`

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Flags holds the command line flags.
type Flags struct {
	Verbose          bool
	Quiet            bool
	WarningsAsErrors bool
	Schema           string
	Output           OutputFormat
	Metrics          bool
	ShowVersion      bool
	Workers          int
	Sources          []string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer, cfg *config.Config) (*Flags, error) {
	f := &Flags{}
	var output string

	fs := pflag.NewFlagSet("geofeed-validator", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "List valid records too")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "Print the verdict only")
	fs.BoolVarP(&f.WarningsAsErrors, "warnings-as-errors", "w", false, "Treat warnings as errors")
	fs.StringVarP(&f.Schema, "type", "t", cfg.Schema, "Schema: "+strings.Join(registry.Names(), ", "))
	fs.IntVarP(&f.Workers, "jobs", "j", cfg.Workers, "Sources validated in parallel (0 = one per CPU)")
	fs.StringVarP(&output, "output", "o", string(OutputText), "Output format: text, json, yaml")
	fs.BoolVar(&f.Metrics, "metrics", false, "Print Prometheus metrics to stderr")
	fs.BoolVarP(&f.ShowVersion, "version", "V", false, "Show version")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch OutputFormat(strings.ToLower(output)) {
	case OutputText:
		f.Output = OutputText
	case OutputJSON:
		f.Output = OutputJSON
	case OutputYAML:
		f.Output = OutputYAML
	default:
		return nil, fmt.Errorf("unknown output format %q", output)
	}

	if f.ShowVersion {
		return f, nil
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, errors.New("expected at least one source")
	}
	if f.Workers < 0 {
		return nil, fmt.Errorf("invalid number of jobs %d", f.Workers)
	}
	f.Sources = fs.Args()
	if i := slices.Index(f.Sources, fetch.Stdin); i >= 0 && slices.Contains(f.Sources[i+1:], fetch.Stdin) {
		return nil, errors.New("standard input may be given only once")
	}
	return f, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	flags, err := parseFlags(args, stderr, cfg)
	if errors.Is(err, pflag.ErrHelp) {
		return exitValid
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if flags.ShowVersion {
		fmt.Fprintf(stdout, "geofeed-validator %s\n", geofeed.BuildVersion())
		return exitValid
	}

	log := logger.New(stderr, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if flags.Verbose && log.GetLevel() > zerolog.InfoLevel {
		log = log.Level(zerolog.InfoLevel)
	}
	logger.SetDefault(log)

	schema, err := registry.Find(flags.Schema)
	if err != nil {
		log.Error().Err(err).Str("schema", flags.Schema).Msg("validator not found")
		return exitError
	}

	lookup, err := loadLookup(cfg)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.CodeTable).Msg("code table")
		return exitError
	}

	var metrics *geofeed.Metrics
	reg := prometheus.NewRegistry()
	if flags.Metrics {
		if metrics, err = geofeed.NewMetrics(reg); err != nil {
			log.Error().Err(err).Msg("metrics")
			return exitError
		}
	}

	fetcher := fetch.New(fetch.Options{
		Timeout:   cfg.HTTPTimeout,
		Retries:   cfg.FetchRetries,
		UserAgent: cfg.UserAgent,
		Stdin:     stdin,
		Logger:    log,
	})

	validate := func(ctx context.Context, source string) (*result.ValidationResult, error) {
		src, err := fetcher.Open(ctx, source)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		v, err := geofeed.New(geofeed.FromReader(src),
			geofeed.WithSchema(geofeed.BySchema(schema)),
			geofeed.WithLookup(lookup),
			geofeed.WithRawRecords(true),
			geofeed.WithLogger(log.With().Str("source", source).Logger()),
			geofeed.WithMetrics(metrics),
		)
		if err != nil {
			return nil, err
		}
		return v.Validate()
	}

	batch := worker.NewBatchValidator(validate, flags.Workers).ValidateBatch(ctx, flags.Sources)
	log.Info().
		Str("schema", schema.Name).
		Int("sources", batch.TotalJobs).
		Int("failed", batch.FailedJobs).
		Dur("took", batch.TotalDuration).
		Msg("batch validated")

	reports := make([]*report.Report, 0, len(batch.Results))
	for i, jr := range batch.Results {
		if jr == nil {
			log.Error().Str("source", flags.Sources[i]).Msg("validation skipped")
			continue
		}
		if jr.Error != nil {
			log.Error().Err(jr.Error).Str("source", jr.Source).Msg("could not validate feed")
			continue
		}
		rep := report.New(jr.Result, schema.Name)
		rep.Source = jr.Source
		rep.RecordName = schema.RecordName()
		reports = append(reports, rep)
	}

	allowWarnings := !flags.WarningsAsErrors
	if err := writeReports(stdout, reports, flags, allowWarnings); err != nil {
		log.Error().Err(err).Msg("write report")
		return exitError
	}

	if flags.Metrics {
		if err := writeMetrics(stderr, reg); err != nil {
			log.Error().Err(err).Msg("write metrics")
		}
	}

	switch {
	case batch.HasFailures():
		return exitError
	case batch.AllValid(allowWarnings):
		return exitValid
	default:
		return exitInvalid
	}
}

// writeReports writes a single report as is. Several reports are written
// as a list, or as text sections headed by their source.
func writeReports(w io.Writer, reports []*report.Report, flags *Flags, allowWarnings bool) error {
	if len(flags.Sources) == 1 {
		if len(reports) == 0 {
			return nil
		}
		return writeReport(w, reports[0], flags, allowWarnings)
	}

	switch flags.Output {
	case OutputJSON:
		return report.EncodeAllJSON(w, reports)
	case OutputYAML:
		return report.EncodeAllYAML(w, reports)
	}
	for _, rep := range reports {
		if _, err := fmt.Fprintf(w, "== %s ==\n", rep.Source); err != nil {
			return err
		}
		if err := writeReport(w, rep, flags, allowWarnings); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(w io.Writer, rep *report.Report, flags *Flags, allowWarnings bool) error {
	switch flags.Output {
	case OutputJSON:
		return report.EncodeJSON(w, rep)
	case OutputYAML:
		return report.EncodeYAML(w, rep)
	default:
		return report.WriteText(w, rep, report.TextOptions{
			Verbose:       flags.Verbose,
			Quiet:         flags.Quiet,
			AllowWarnings: allowWarnings,
		})
	}
}

// loadLookup builds the code lookup, merging the configured code table
// into the embedded one.
func loadLookup(cfg *config.Config) (codes.Lookup, error) {
	table, err := codes.NewTable()
	if err != nil {
		return nil, err
	}
	if cfg.CodeTable != "" {
		f, err := os.Open(cfg.CodeTable)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := table.LoadYAML(f); err != nil {
			return nil, err
		}
	}
	return codes.NewCached(table, cfg.CacheSize), nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
