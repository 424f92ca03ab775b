package domain

import (
	"math"
	"time"
)

// FromMillisUTC returns the UTC instant ms milliseconds after the Unix epoch.
func FromMillisUTC(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// FromSecondsUTC converts epoch seconds to a UTC instant through the
// millisecond representation.
func FromSecondsUTC(sec int64) (time.Time, error) {
	if sec > math.MaxInt64/1000 || sec < math.MinInt64/1000 {
		return time.Time{}, &TimeRangeError{Seconds: sec}
	}
	return FromMillisUTC(sec * 1000), nil
}
