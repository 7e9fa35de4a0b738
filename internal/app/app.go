// Package app wires argv to one tesscross batch: flag parsing, config
// merging, catalog/schedule loading, coverage-source construction, and the
// appcore run loop.
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"tesscross-core/catalog"
	"tesscross-core/match"
	"tesscross-core/sector"
	"tesscross/internal/appcore"
	"tesscross/internal/cli"
	"tesscross/internal/config"
	"tesscross/internal/coverage"
	"tesscross/internal/logging"
	"tesscross/internal/names"
	"tesscross/internal/runutil"
	"tesscross/internal/version"
	"tesscross/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("tesscross")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flushUsage(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushUsage(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flushUsage(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "tesscross version %s\n", version.Version)
		return flushUsage(outw, stderr, 0)
	}

	cfg := config.Defaults()
	if opts.ConfigFile != "" {
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	applyOverrides(&cfg, opts)

	log := logging.New(stderr, opts.Verbose, opts.Quiet)

	src, err := buildSource(cfg, opts, log)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	flares, err := loadFlares(opts.FlareFiles)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.NamesFile != "" {
		nt, err := names.Load(opts.NamesFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		if err := catalog.AssignIDs(parent, flares, nt); err != nil {
			if errors.Is(err, context.Canceled) {
				return 130
			}
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	tab, err := sector.Load(opts.SectorFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	bounds, err := runutil.ParseBoundsMode(opts.Bounds)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	coreOpts := appcore.Options{
		Bounds: bounds, Dedupe: opts.Dedupe,
		Threads: opts.Threads,
		Output:  opts.Output, Sort: opts.Sort, Header: opts.Header, Pretty: opts.Pretty,
		DiagFile: opts.DiagFile,
		RunID:    uuid.NewString(),
		Quiet:    opts.Quiet, NoMatchExitCode: opts.NoMatchExitCode,
		Logger: log,
	}
	return appcore.Run(parent, stdout, stderr, coreOpts, flares, tab, src)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// applyOverrides lets flags beat the config file.
func applyOverrides(cfg *config.File, opts cli.Options) {
	if opts.CoverageURL != "" {
		cfg.Coverage.BaseURL = opts.CoverageURL
	}
	if opts.Timeout != "" {
		cfg.Coverage.Timeout = opts.Timeout
	}
}

func buildSource(cfg config.File, opts cli.Options, log *slog.Logger) (match.CoverageSource, error) {
	if opts.CoverageFile != "" {
		return coverage.LoadFile(opts.CoverageFile)
	}
	timeout, err := cfg.Coverage.ParseTimeout()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.Coverage.ParseCacheTTL()
	if err != nil {
		return nil, err
	}
	return coverage.NewClient(coverage.Config{
		BaseURL:     cfg.Coverage.BaseURL,
		Timeout:     timeout,
		CacheTTL:    ttl,
		RateLimitMS: cfg.Coverage.RateLimitMS,
		MaxRetries:  cfg.Coverage.MaxRetries,
		Logger:      log,
	})
}

// loadFlares reads every catalog and merges them into one sequence,
// re-sorted by timestamp so the endpoint bounds stay meaningful.
func loadFlares(paths []string) ([]catalog.FlareRecord, error) {
	var all []catalog.FlareRecord
	for _, p := range paths {
		recs, err := catalog.Load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	if len(paths) > 1 {
		catalog.SortByTime(all)
	}
	return all, nil
}

func flushUsage(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
