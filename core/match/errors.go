package match

import "fmt"

// CoverageLookupError wraps a coverage-service failure (including timeout)
// for one flare. Recovered locally: the flare ends with zero matches.
type CoverageLookupError struct {
	FlareIndex int
	Err        error
}

func (e *CoverageLookupError) Error() string {
	return fmt.Sprintf("coverage lookup for flare %d: %v", e.FlareIndex, e.Err)
}

func (e *CoverageLookupError) Unwrap() error { return e.Err }

// ConsistencyError reports a coverage hit that references a sector ID
// absent from the aggregated schedule. Recovered per hit.
type ConsistencyError struct {
	SectorID int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("coverage hit references unknown sector %d", e.SectorID)
}
