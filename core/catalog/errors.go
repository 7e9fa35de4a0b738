package catalog

import "fmt"

// MalformedInputError reports a catalog or schedule table that cannot be
// used: missing required columns or an unparsable field. It is fatal for
// the whole run.
type MalformedInputError struct {
	Path string
	Line int // 0 when the problem is table-wide (e.g. a missing column)
	Msg  string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}
