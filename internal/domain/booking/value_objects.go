package booking

import (
	"errors"
	"time"
)

var ErrInvalidSlot = errors.New("invalid time slot")

// TimeSlot is a half-open interval [start, start+duration).
type TimeSlot struct {
	start    time.Time
	duration time.Duration
}

func NewTimeSlot(start time.Time, duration time.Duration) (TimeSlot, error) {
	if start.IsZero() || duration <= 0 {
		return TimeSlot{}, ErrInvalidSlot
	}
	return TimeSlot{start: start, duration: duration}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.start.Add(ts.duration)
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.duration
}

// Overlaps reports whether two half-open intervals intersect. Equal start
// times conflict; a slot ending exactly when another begins does not.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.End()) && other.start.Before(ts.End())
}
