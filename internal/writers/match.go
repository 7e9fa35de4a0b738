// Package writers owns the output goroutines: each Start* call returns a
// channel to feed and an error channel that yields once after the input
// channel is closed.
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"tesscross-core/catalog"
	"tesscross/internal/common"
	"tesscross/internal/jsonlutil"
	"tesscross/internal/output"
)

// Options configures a match writer.
type Options struct {
	Sort   bool // deterministic order instead of catalog order
	Header bool
	RunID  string
	// GeneratedAt stamps the JSON envelope (RFC 3339 UTC).
	GeneratedAt string
	// Render, when non-nil, appends a block after each text row (--pretty).
	Render func(catalog.FlareRecord) string
}

// StartMatchWriter spins up a writer goroutine for matched flare records.
// Supported formats: text | csv | json | jsonl.
func StartMatchWriter(out io.Writer, format string, o Options, bufSize int) (chan<- catalog.FlareRecord, <-chan error) {
	if format == "jsonl" {
		return jsonlutil.Start[catalog.FlareRecord](out, bufSize,
			func(enc *json.Encoder, r catalog.FlareRecord) error {
				return enc.Encode(output.ToAPIMatch(r))
			},
			IsBrokenPipe,
		)
	}

	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan catalog.FlareRecord, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "text":
			if o.Sort {
				buf := drain(in)
				common.SortRecords(buf)
				err = output.WriteText(out, buf, o.Header, o.Render)
			} else {
				err = output.StreamText(out, in, o.Header, o.Render)
				drainRest(in)
			}

		case "csv":
			buf := drain(in)
			if o.Sort {
				common.SortRecords(buf)
			}
			err = output.WriteCSV(out, buf, o.Header)

		case "json":
			buf := drain(in)
			if o.Sort {
				common.SortRecords(buf)
			}
			err = output.WriteJSON(out, o.RunID, o.GeneratedAt, buf)

		default:
			err = fmt.Errorf("unsupported output %q", format)
			drainRest(in)
		}
		errCh <- err
	}()

	return in, errCh
}

func drain(in <-chan catalog.FlareRecord) []catalog.FlareRecord {
	var buf []catalog.FlareRecord
	for r := range in {
		buf = append(buf, r)
	}
	return buf
}

// drainRest empties the channel so a failed writer never blocks the sender.
func drainRest(in <-chan catalog.FlareRecord) {
	for range in {
	}
}
