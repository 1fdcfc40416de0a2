package player

import (
	"fmt"
	"math"
	"time"
)

const zeroClock = "0:00"

// FormatClock renders d as minutes:seconds with zero-padded seconds.
// Absent values (known == false) and negative durations render as 0:00.
// Fractional seconds are truncated, so 75.4s renders as 1:15.
func FormatClock(d time.Duration, known bool) string {
	if !known || d < 0 {
		return zeroClock
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatSeconds renders a resource-reported seconds value as m:ss.
// NaN, infinities and negative values render as 0:00.
func FormatSeconds(seconds float64) string {
	d, ok := FromSeconds(seconds)
	return FormatClock(d, ok)
}

// FromSeconds converts a floating point seconds value to a duration.
// It reports false for NaN, infinities, negative values and values that do
// not fit in a time.Duration.
func FromSeconds(seconds float64) (time.Duration, bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, false
	}
	if seconds > float64(math.MaxInt64)/float64(time.Second) {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}
