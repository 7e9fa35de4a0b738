// Package runutil holds small pure helpers shared by the app layers.
package runutil

import (
	"fmt"
	"runtime"

	"tesscross-core/match"
)

// EffectiveThreads resolves the --threads flag: 0 means all CPUs.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Bounds-mode flag spellings.
const (
	BoundsEndpoints = "endpoints"
	BoundsScan      = "scan"
)

// ParseBoundsMode maps the --bounds flag onto the engine's BoundsMode.
func ParseBoundsMode(s string) (match.BoundsMode, error) {
	switch s {
	case BoundsEndpoints:
		return match.BoundsEndpoints, nil
	case BoundsScan:
		return match.BoundsScan, nil
	default:
		return 0, fmt.Errorf("invalid --bounds %q (want %s | %s)", s, BoundsEndpoints, BoundsScan)
	}
}
