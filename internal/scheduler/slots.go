package scheduler

import (
	"sort"
	"time"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// SlotGrid holds the ordered candidate start slots per interview duration.
// It is a pure function of the configuration: generating it twice from the
// same config yields identical sequences.
type SlotGrid struct {
	durations []time.Duration
	slots     map[time.Duration][]models.TimeSlot
}

// BuildSlotGrid expands the configured day windows into grid-aligned slots.
// A slot exists for every granularity step whose [start, start+duration)
// fits inside a single window.
func BuildSlotGrid(cfg Config) (*SlotGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	windows := make([]Window, len(cfg.Windows))
	copy(windows, cfg.Windows)
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start.Before(windows[j].Start) })

	grid := &SlotGrid{
		durations: cfg.durationClasses(),
		slots:     make(map[time.Duration][]models.TimeSlot),
	}
	for _, duration := range grid.durations {
		var slots []models.TimeSlot
		for _, window := range windows {
			for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(cfg.Granularity) {
				slots = append(slots, models.NewTimeSlot(start, duration))
			}
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
		grid.slots[duration] = slots
	}
	return grid, nil
}

// Slots returns the ordered slot sequence for a duration class.
func (g *SlotGrid) Slots(duration time.Duration) []models.TimeSlot {
	return g.slots[duration]
}

// ForType returns the slot sequence for an interview type under cfg.
func (g *SlotGrid) ForType(cfg Config, kind models.InterviewType) []models.TimeSlot {
	return g.Slots(cfg.durationFor(kind))
}

// Durations lists the duration classes in generation order.
func (g *SlotGrid) Durations() []time.Duration {
	return g.durations
}
