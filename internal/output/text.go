package output

import (
	"fmt"
	"io"

	"tesscross-core/catalog"
)

// WriteText writes records as a TSV table. When render is non-nil its
// output is appended after each row (the --pretty block).
func WriteText(w io.Writer, list []catalog.FlareRecord, header bool, render func(catalog.FlareRecord) string) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
		if render != nil {
			if _, err := io.WriteString(w, render(r)); err != nil {
				return err
			}
		}
	}
	return nil
}

// StreamText is the channel-driven variant used by the text writer goroutine.
func StreamText(w io.Writer, in <-chan catalog.FlareRecord, header bool, render func(catalog.FlareRecord) string) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
		if render != nil {
			if _, err := io.WriteString(w, render(r)); err != nil {
				return err
			}
		}
	}
	return nil
}
