// Package sectorscli parses the tesscross-sectors command line.
package sectorscli

import (
	"errors"
	"flag"
	"fmt"

	"tesscross/internal/clibase"
	"tesscross/internal/cliutil"
	"tesscross/internal/version"
)

// Options holds the schedule-inspection flags.
type Options struct {
	clibase.Common
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: aggregate a TESS orbit schedule into per-sector windows

Version: %s

Usage:
  %s --sectors orbits.csv [flags]
  %s orbits.csv

Flags:
`, name, version.Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
// A single positional argument may stand in for --sectors.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	noHeader := clibase.Register(fs, &opt.Common)

	flagArgs, posArgs := cliutil.SplitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	opt.Header = !*noHeader

	pos, err := clibase.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	switch {
	case len(pos) == 0:
	case len(pos) == 1 && opt.SectorFile == "":
		opt.SectorFile = pos[0]
	default:
		return opt, errors.New("expected at most one schedule path")
	}

	if opt.Version {
		return opt, nil
	}
	if opt.Output == "jsonl" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, clibase.Validate(&opt.Common)
}
