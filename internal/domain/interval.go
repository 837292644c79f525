package domain

import (
	"fmt"

	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Interval represents a half-open time interval [Start, End) within a single day.
// Both bounds are minutes since midnight. Intervals never cross midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds an interval from a start time and a duration in minutes.
// The end is always derived from start+duration and never stored independently,
// so overlap math cannot drift from a stale end value.
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return Interval{}, fmt.Errorf("interval: invalid start time: %w", err)
	}

	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("interval: duration must be positive, got %d", durationMinutes)
	}

	end := startMin + durationMinutes
	if end > 24*60 {
		return Interval{}, fmt.Errorf("interval: [%s + %dm] crosses midnight", start, durationMinutes)
	}

	return Interval{Start: startMin, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Touching bounds do not overlap: an appointment ending at 10:00
// does not conflict with one starting at 10:00.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether the given minute-of-day lies inside the interval.
func (i Interval) Contains(minute int) bool {
	return minute >= i.Start && minute < i.End
}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}
