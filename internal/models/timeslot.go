package models

import (
	"fmt"
	"time"
)

// TimeSlot is a half-open interval [Start, End). Slots on the scheduling
// grid are immutable values; identity is the start instant plus duration.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeSlot builds a slot of the given duration.
func NewTimeSlot(start time.Time, duration time.Duration) TimeSlot {
	return TimeSlot{Start: start, End: start.Add(duration)}
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether the two intervals intersect.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Contains reports whether other lies entirely within s.
func (s TimeSlot) Contains(other TimeSlot) bool {
	return !other.Start.Before(s.Start) && !other.End.After(s.End)
}

// StartGap returns the absolute difference between the start instants.
func (s TimeSlot) StartGap(other TimeSlot) time.Duration {
	gap := s.Start.Sub(other.Start)
	if gap < 0 {
		gap = -gap
	}
	return gap
}

// Key returns a stable identity string for map lookups.
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%d/%d", s.Start.Unix(), int(s.Duration().Minutes()))
}

// IsZero reports whether the slot is unset.
func (s TimeSlot) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// String renders the slot the way it appears in reports.
func (s TimeSlot) String() string {
	return s.Start.Format("01/02/2006 03:04 PM") + "-" + s.End.Format("03:04 PM")
}
