// Package appcore runs one matching batch: candidate pruning, the worker
// pipeline, result assembly, and the output writer, with the shared
// exit-code discipline (0 ok, no-match code when nothing coincides,
// 2 usage/input, 3 I/O, 130 canceled).
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"tesscross-core/catalog"
	"tesscross-core/match"
	"tesscross-core/sector"
	"tesscross/internal/common"
	"tesscross/internal/pipeline"
	"tesscross/internal/pretty"
	"tesscross/internal/runutil"
	"tesscross/internal/writers"
)

// Options carries everything Run needs beyond the loaded tables.
type Options struct {
	Bounds match.BoundsMode
	Dedupe bool

	Threads int

	Output   string
	Sort     bool
	Header   bool
	Pretty   bool
	DiagFile string

	RunID           string
	Quiet           bool
	NoMatchExitCode int

	Logger *slog.Logger
}

// Run executes one batch and returns the process exit code.
func Run(
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	flares []catalog.FlareRecord,
	tab *sector.Table,
	src match.CoverageSource,
) int {
	outw := bufio.NewWriter(stdout)
	log := o.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng := match.New(match.Config{Bounds: o.Bounds, Dedupe: o.Dedupe}, tab, src)
	candidates := eng.Candidates(flares)
	log.Info("batch start",
		"run_id", o.RunID,
		"flares", len(flares),
		"sectors", tab.Len(),
		"candidate_sectors", len(candidates))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	matchedBy := make([][]int, len(flares))
	var diags []match.Diagnostic
	perr := pipeline.ForEachFlare(ctx, pipeline.Config{Threads: runutil.EffectiveThreads(o.Threads)},
		flares, candidates, eng,
		func(r pipeline.Result) error {
			matchedBy[r.Index] = r.Matched
			diags = append(diags, r.Diagnostics...)
			return nil
		})
	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}

	// Attach match lists without touching the caller's records.
	out := make([]catalog.FlareRecord, len(flares))
	copy(out, flares)
	for i := range out {
		out[i].Matched = matchedBy[i]
	}
	matched := match.Assemble(out)
	if o.Sort {
		common.SortRecords(matched)
	}

	// Completion order varies with scheduling; report deterministically.
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].FlareIndex != diags[j].FlareIndex {
			return diags[i].FlareIndex < diags[j].FlareIndex
		}
		return diags[i].SectorID < diags[j].SectorID
	})

	for _, d := range diags {
		log.Info("diagnostic",
			"run_id", o.RunID,
			"flare_index", d.FlareIndex,
			"flare_id", d.FlareID,
			"sector_id", d.SectorID,
			"reason", d.Reason,
			"detail", d.Detail)
	}
	log.Info("batch done",
		"run_id", o.RunID,
		"matched_flares", len(matched),
		"diagnostics", len(diags))

	wopts := writers.Options{
		Sort:        o.Sort,
		Header:      o.Header,
		RunID:       o.RunID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if o.Pretty {
		wopts.Render = func(r catalog.FlareRecord) string { return pretty.RenderMatch(r, tab) }
	}
	in, writeErr := writers.StartMatchWriter(outw, o.Output, wopts, runutil.EffectiveThreads(o.Threads)*4)
	for _, r := range matched {
		in <- r
	}
	close(in)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if o.DiagFile != "" {
		if err := writeDiagFile(o.DiagFile, o.RunID, diags); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if len(matched) == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

func writeDiagFile(path, runID string, diags []match.Diagnostic) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	werr := writers.WriteDiagnostics(fh, runID, diags)
	if cerr := fh.Close(); werr == nil {
		werr = cerr
	}
	return werr
}
