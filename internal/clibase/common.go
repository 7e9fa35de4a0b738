// Package clibase holds the CLI fields and flags shared by tesscross and
// tesscross-sectors.
package clibase

import (
	"errors"
	"flag"
	"fmt"

	"tesscross/internal/cliutil"
)

// Common holds flags both commands register.
type Common struct {
	SectorFile string

	Output string // text | csv | json | jsonl
	Header bool   // true unless --no-header

	Quiet   bool
	Verbose bool
	Version bool
}

// sliceValue appends each value to a *[]string (for repeatable flags).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// SliceVar registers a repeatable string flag under name and alias.
func SliceVar(fs *flag.FlagSet, dst *[]string, name, alias, usage string) {
	v := &sliceValue{dst: dst}
	fs.Var(v, name, usage)
	if alias != "" {
		fs.Var(v, alias, "alias of --"+name)
	}
}

// Register wires the shared flags onto fs and returns the "no-header"
// pointer; callers set Common.Header = !*noHeader after parsing.
func Register(fs *flag.FlagSet, c *Common) *bool {
	fs.StringVar(&c.SectorFile, "sectors", "", "orbit-schedule CSV [*]")
	fs.StringVar(&c.SectorFile, "s", "", "alias of --sectors")

	fs.StringVar(&c.Output, "output", "text", "output: text | csv | json | jsonl [text]")
	fs.StringVar(&c.Output, "o", "text", "alias of --output")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress warnings and diagnostics logging [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "debug-level diagnostics logging [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "v", false, "alias of --version")

	return &noHeader
}

// Validate applies the shared CLI invariants.
func Validate(c *Common) error {
	if c.SectorFile == "" {
		return errors.New("--sectors is required")
	}
	switch c.Output {
	case "text", "csv", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	if c.Quiet && c.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	return nil
}

// ExpandPositionals resolves globs among positionals (shared helper).
func ExpandPositionals(pos []string) ([]string, error) {
	return cliutil.ExpandPositionals(pos)
}
