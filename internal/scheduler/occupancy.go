package scheduler

import "github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"

// Occupancy tracks which entities are booked at which times during a
// single scheduling run. Every strategy builds its own instance; it is
// never shared, so strategies cannot interfere with each other.
type Occupancy struct {
	booked map[string][]models.TimeSlot
}

// NewOccupancy returns an empty booking index.
func NewOccupancy() *Occupancy {
	return &Occupancy{booked: make(map[string][]models.TimeSlot)}
}

// Busy reports whether the entity already holds a booking overlapping slot.
func (o *Occupancy) Busy(kind EntityKind, id string, slot models.TimeSlot) bool {
	for _, existing := range o.booked[entityKey(kind, id)] {
		if existing.Overlaps(slot) {
			return true
		}
	}
	return false
}

// Commit books every participant, recruiter and the room of the interview.
func (o *Occupancy) Commit(iv models.Interview) {
	o.book(KindRoom, iv.RoomID, iv.Slot)
	for _, email := range iv.Applicants {
		o.book(KindApplicant, email, iv.Slot)
	}
	for _, id := range iv.Recruiters {
		o.book(KindRecruiter, id, iv.Slot)
	}
}

// Release reverses a Commit, freeing every booked entity.
func (o *Occupancy) Release(iv models.Interview) {
	o.release(KindRoom, iv.RoomID, iv.Slot)
	for _, email := range iv.Applicants {
		o.release(KindApplicant, email, iv.Slot)
	}
	for _, id := range iv.Recruiters {
		o.release(KindRecruiter, id, iv.Slot)
	}
}

func (o *Occupancy) book(kind EntityKind, id string, slot models.TimeSlot) {
	key := entityKey(kind, id)
	o.booked[key] = append(o.booked[key], slot)
}

func (o *Occupancy) release(kind EntityKind, id string, slot models.TimeSlot) {
	key := entityKey(kind, id)
	bookings := o.booked[key]
	for i := range bookings {
		if bookings[i].Start.Equal(slot.Start) && bookings[i].End.Equal(slot.End) {
			o.booked[key] = append(bookings[:i], bookings[i+1:]...)
			return
		}
	}
}
