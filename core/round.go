package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// RoundDuration quantizes a duration to a multiple of roundTo, halves going
// up, and returns milliseconds. A non-positive roundTo leaves it untouched.
// Quantizing happens in whole nanoseconds so sub-millisecond granularities
// convert without residue.
func RoundDuration(d, roundTo time.Duration) float64 {
	return Millis(d.Round(roundTo))
}

// Round quantizes a millisecond value to the nearest multiple of roundTo,
// halves going up. Both are taken to nanosecond precision.
func Round(ms, roundTo float64) float64 {
	return RoundDuration(fromMillis(ms), fromMillis(roundTo))
}

func fromMillis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// formatMillis prints a millisecond value the way it appears in labels: "200", "12.5".
// Digits below a nanosecond are dropped.
func formatMillis(ms float64) string {
	s := strconv.FormatFloat(ms, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// roundHalfUp rounds to the nearest integer with halves going up, like JS Math.round.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
