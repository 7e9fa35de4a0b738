// Package mjd converts between Modified Julian Date (UTC scale) and
// time.Time, and parses the timestamp spellings found in flare catalogs
// and sector schedules (numeric MJD or ISO-8601).
package mjd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// UnixEpoch is 1970-01-01T00:00:00Z expressed as a Modified Julian Date.
const UnixEpoch = 40587.0

const secondsPerDay = 86400.0

// FromTime converts t to an MJD on the UTC scale.
func FromTime(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return UnixEpoch + sec/secondsPerDay
}

// ToTime converts an MJD (UTC) to a time.Time in UTC.
func ToTime(m float64) time.Time {
	sec := (m - UnixEpoch) * secondsPerDay
	s, frac := math.Modf(sec)
	return time.Unix(int64(s), int64(frac*1e9)).UTC()
}

// iso8601Layouts covers the timestamp spellings observed across catalog
// versions. Tried in order; all are interpreted as UTC when no zone is given.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse accepts either a numeric MJD ("58810.1234") or an ISO-8601
// timestamp and returns a Modified Julian Date (UTC).
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("non-finite MJD %q", s)
		}
		return v, nil
	}
	for _, layout := range iso8601Layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FromTime(t), nil
		}
	}
	return 0, fmt.Errorf("unparsable timestamp %q", s)
}
