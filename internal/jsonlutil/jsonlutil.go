// Package jsonlutil runs the shared JSONL encoder goroutine used by the
// streaming writers.
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
)

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: fn to encode one value (convert to wire type & enc.Encode)
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
//
// The returned channel must be closed by the sender; the error channel
// yields exactly one value after that.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc := json.NewEncoder(bw)

		var werr error
		for v := range in {
			if werr != nil {
				continue // drain so the sender never blocks
			}
			werr = encode(enc, v)
		}
		if werr == nil {
			if err := bw.Flush(); err != nil && !isBroken(err) {
				werr = err
			}
		}
		done <- werr
	}()

	return in, done
}
