// Package sectorsapp implements tesscross-sectors: load an orbit-level
// schedule, aggregate it to per-sector windows, and print the table.
package sectorsapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tesscross-core/sector"
	"tesscross/internal/output"
	"tesscross/internal/sectorscli"
	"tesscross/internal/version"
	"tesscross/internal/writers"
)

func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := sectorscli.NewFlagSet("tesscross-sectors")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 0)
	}

	opts, err := sectorscli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "tesscross-sectors version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	tab, err := sector.Load(opts.SectorFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	switch opts.Output {
	case "text":
		err = output.WriteWindowsTSV(outw, tab.Windows(), opts.Header)
	case "csv":
		err = output.WriteWindowsCSV(outw, tab.Windows(), opts.Header)
	case "json":
		err = output.WriteWindowsJSON(outw, tab.Windows())
	}
	if writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return flush(outw, stderr, 0)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
