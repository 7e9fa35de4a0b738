// Package cli parses the tesscross command line.
package cli

import (
	"errors"
	"flag"
	"fmt"

	"tesscross/internal/clibase"
	"tesscross/internal/cliutil"
	"tesscross/internal/runutil"
	"tesscross/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	clibase.Common

	// Inputs
	FlareFiles []string
	NamesFile  string

	// Coverage service
	ConfigFile   string
	CoverageURL  string
	CoverageFile string
	Timeout      string // Go duration; empty = config/default

	// Matching
	Bounds string // endpoints | scan
	Dedupe bool

	// Performance
	Threads int

	// Output
	Sort            bool
	Pretty          bool
	DiagFile        string
	NoMatchExitCode int
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: cross-match a flare catalog against TESS sector coverage

Version: %s

Usage:
  %s --sectors orbits.csv [flags] flares.csv [flares2.csv ...]

Examples:
  %s -s orbits.csv flares.csv
  %s -s orbits.csv -o jsonl --dedupe flares.csv
  %s -s orbits.csv --coverage-file snapshot.csv --diag diag.jsonl flares.csv

Flags:
`, name, version.Version, name, name, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options

	noHeader := clibase.Register(fs, &opt.Common)

	clibase.SliceVar(fs, &opt.FlareFiles, "flares", "f", "flare catalog CSV (repeatable) or '-' [*]")

	fs.StringVar(&opt.NamesFile, "names", "", "position-to-identifier CSV for unnamed flares")

	fs.StringVar(&opt.ConfigFile, "config", "", "tesscross.yaml path (optional)")
	fs.StringVar(&opt.CoverageURL, "coverage-url", "", "coverage service base URL (overrides config)")
	fs.StringVar(&opt.CoverageFile, "coverage-file", "", "offline coverage snapshot CSV (no network)")
	fs.StringVar(&opt.Timeout, "coverage-timeout", "", "per-request timeout, e.g. 30s (overrides config)")

	fs.StringVar(&opt.Bounds, "bounds", runutil.BoundsEndpoints,
		"catalog span from input order endpoints or a full scan: endpoints | scan ["+runutil.BoundsEndpoints+"]")
	fs.BoolVar(&opt.Dedupe, "dedupe", false, "collapse duplicate sector IDs per flare [false]")

	fs.IntVar(&opt.Threads, "threads", 0, "worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")

	fs.BoolVar(&opt.Sort, "sort", false, "sort output deterministically [false]")
	fs.BoolVar(&opt.Pretty, "pretty", false, "ASCII window block after each text row [false]")
	fs.StringVar(&opt.DiagFile, "diag", "", "write diagnostics JSONL to this path")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no flare matches [1]")

	flagArgs, posArgs := cliutil.SplitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	opt.Header = !*noHeader

	pos, err := clibase.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.FlareFiles = append(opt.FlareFiles, pos...)

	if opt.Version {
		return opt, nil
	}
	return opt, validate(&opt)
}

func validate(o *Options) error {
	if err := clibase.Validate(&o.Common); err != nil {
		return err
	}
	if len(o.FlareFiles) == 0 {
		return errors.New("at least one flare catalog is required")
	}
	if o.CoverageFile != "" && o.CoverageURL != "" {
		return errors.New("--coverage-file conflicts with --coverage-url")
	}
	if _, err := runutil.ParseBoundsMode(o.Bounds); err != nil {
		return err
	}
	if o.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	if o.Pretty && o.Output != "text" {
		return errors.New("--pretty requires --output text")
	}
	return nil
}
