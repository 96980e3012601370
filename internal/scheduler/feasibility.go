package scheduler

import "github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"

// Reason explains why the oracle rejected a candidate.
type Reason string

// Rejection reasons, in check order.
const (
	ReasonNone        Reason = ""
	ReasonCardinality Reason = "cardinality_out_of_bounds"
	ReasonUnavailable Reason = "entity_unavailable"
	ReasonBooked      Reason = "entity_already_booked"
)

// Verdict is the oracle's answer for one candidate.
type Verdict struct {
	OK     bool
	Reason Reason
	Entity string
}

// Candidate is a fully-specified interview that has not been committed yet.
type Candidate struct {
	Type       models.InterviewType
	Slot       models.TimeSlot
	Applicants []string
	Recruiters []string
	RoomID     string
}

// Interview materialises the candidate with a deterministic ID. A room can
// hold at most one interview per slot, so type+slot+room identifies it.
func (c Candidate) Interview() models.Interview {
	return models.Interview{
		ID:         string(c.Type) + "/" + c.Slot.Key() + "/" + c.RoomID,
		Type:       c.Type,
		Slot:       c.Slot,
		RoomID:     c.RoomID,
		Applicants: append([]string(nil), c.Applicants...),
		Recruiters: append([]string(nil), c.Recruiters...),
	}
}

// candidateOf turns a committed interview back into a candidate so it can
// be re-admitted after a speculative uncommit.
func candidateOf(iv models.Interview) Candidate {
	return Candidate{
		Type:       iv.Type,
		Slot:       iv.Slot,
		Applicants: iv.Applicants,
		Recruiters: iv.Recruiters,
		RoomID:     iv.RoomID,
	}
}

// Oracle decides hard-constraint admissibility. It holds no mutable state
// of its own: it reads the shared availability index and the occupancy
// index owned by the calling strategy.
type Oracle struct {
	cfg   Config
	avail *AvailabilityIndex
}

// NewOracle binds the oracle to the shared availability index.
func NewOracle(cfg Config, avail *AvailabilityIndex) *Oracle {
	return &Oracle{cfg: cfg, avail: avail}
}

// Admit checks cardinality, availability, then occupancy, short-circuiting
// on the first failure.
func (o *Oracle) Admit(c Candidate, occ *Occupancy) Verdict {
	switch c.Type {
	case models.InterviewGroup:
		if len(c.Applicants) < o.cfg.GroupMinApplicants || len(c.Applicants) > o.cfg.GroupMaxApplicants {
			return Verdict{Reason: ReasonCardinality}
		}
		if len(c.Recruiters) < o.cfg.GroupMinRecruiters {
			return Verdict{Reason: ReasonCardinality}
		}
	case models.InterviewIndividual:
		if len(c.Applicants) != 1 || len(c.Recruiters) != 1 {
			return Verdict{Reason: ReasonCardinality}
		}
	default:
		return Verdict{Reason: ReasonCardinality}
	}

	for _, email := range c.Applicants {
		if !o.avail.Available(KindApplicant, email, c.Slot) {
			return Verdict{Reason: ReasonUnavailable, Entity: email}
		}
	}
	for _, id := range c.Recruiters {
		if !o.avail.Available(KindRecruiter, id, c.Slot) {
			return Verdict{Reason: ReasonUnavailable, Entity: id}
		}
	}
	if !o.avail.Available(KindRoom, c.RoomID, c.Slot) {
		return Verdict{Reason: ReasonUnavailable, Entity: c.RoomID}
	}

	for _, email := range c.Applicants {
		if occ.Busy(KindApplicant, email, c.Slot) {
			return Verdict{Reason: ReasonBooked, Entity: email}
		}
	}
	for _, id := range c.Recruiters {
		if occ.Busy(KindRecruiter, id, c.Slot) {
			return Verdict{Reason: ReasonBooked, Entity: id}
		}
	}
	if occ.Busy(KindRoom, c.RoomID, c.Slot) {
		return Verdict{Reason: ReasonBooked, Entity: c.RoomID}
	}

	return Verdict{OK: true}
}
