package scheduler

import (
	"sort"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// builder is the working state of one strategy run: the strategy-local
// occupancy index plus the interviews committed so far. Strategies never
// share a builder.
type builder struct {
	cfg         Config
	grid        *SlotGrid
	avail       *AvailabilityIndex
	oracle      *Oracle
	byEmail     map[string]*models.Applicant
	byRecruiter map[string]*models.Recruiter

	applicants []*models.Applicant // email order
	recruiters []*models.Recruiter // id order
	rooms      []*models.Room      // id order

	occ           *Occupancy
	interviews    []models.Interview
	hasGroup      map[string]bool
	hasIndividual map[string]bool
}

func newBuilder(e *Engine) *builder {
	return &builder{
		cfg:           e.cfg,
		grid:          e.grid,
		avail:         e.avail,
		oracle:        e.oracle,
		byEmail:       e.byEmail,
		byRecruiter:   e.byRecruiter,
		applicants:    e.applicants,
		recruiters:    e.recruiters,
		rooms:         e.rooms,
		occ:           NewOccupancy(),
		hasGroup:      make(map[string]bool),
		hasIndividual: make(map[string]bool),
	}
}

// commit books an admitted candidate. Callers must have consulted the
// oracle first; commit never creates a partially-valid interview.
func (b *builder) commit(c Candidate) models.Interview {
	iv := c.Interview()
	b.interviews = append(b.interviews, iv)
	b.occ.Commit(iv)
	for _, email := range iv.Applicants {
		if iv.Type == models.InterviewGroup {
			b.hasGroup[email] = true
		} else {
			b.hasIndividual[email] = true
		}
	}
	return iv
}

// uncommit removes a committed interview and releases its bookings.
func (b *builder) uncommit(id string) (models.Interview, bool) {
	for i := range b.interviews {
		if b.interviews[i].ID != id {
			continue
		}
		iv := b.interviews[i]
		b.interviews = append(b.interviews[:i], b.interviews[i+1:]...)
		b.occ.Release(iv)
		for _, email := range iv.Applicants {
			if iv.Type == models.InterviewGroup {
				delete(b.hasGroup, email)
			} else {
				delete(b.hasIndividual, email)
			}
		}
		return iv, true
	}
	return models.Interview{}, false
}

// groupFor returns the committed group interview holding the applicant.
func (b *builder) groupFor(email string) (models.Interview, bool) {
	return b.find(email, models.InterviewGroup)
}

// individualFor returns the applicant's committed individual interview.
func (b *builder) individualFor(email string) (models.Interview, bool) {
	return b.find(email, models.InterviewIndividual)
}

func (b *builder) find(email string, kind models.InterviewType) (models.Interview, bool) {
	for i := range b.interviews {
		if b.interviews[i].Type == kind && b.interviews[i].HasApplicant(email) {
			return b.interviews[i], true
		}
	}
	return models.Interview{}, false
}

func (b *builder) applicantFree(email string, slot models.TimeSlot) bool {
	return b.avail.Available(KindApplicant, email, slot) && !b.occ.Busy(KindApplicant, email, slot)
}

// freeRecruiters returns recruiters available and unbooked at slot, in ID
// order.
func (b *builder) freeRecruiters(slot models.TimeSlot) []*models.Recruiter {
	var free []*models.Recruiter
	for _, r := range b.recruiters {
		if b.avail.Available(KindRecruiter, r.ID, slot) && !b.occ.Busy(KindRecruiter, r.ID, slot) {
			free = append(free, r)
		}
	}
	return free
}

// freeRooms returns rooms available and unbooked at slot, in ID order.
func (b *builder) freeRooms(slot models.TimeSlot) []*models.Room {
	var free []*models.Room
	for _, r := range b.rooms {
		if b.avail.Available(KindRoom, r.ID, slot) && !b.occ.Busy(KindRoom, r.ID, slot) {
			free = append(free, r)
		}
	}
	return free
}

// scarcityOrder ranks applicants most-constrained first: fewest total
// available grid slots, ties broken by email for determinism.
func (b *builder) scarcityOrder() []*models.Applicant {
	ordered := make([]*models.Applicant, len(b.applicants))
	copy(ordered, b.applicants)
	sort.SliceStable(ordered, func(i, j int) bool {
		si := b.avail.SlotCount(KindApplicant, ordered[i].Email)
		sj := b.avail.SlotCount(KindApplicant, ordered[j].Email)
		if si != sj {
			return si < sj
		}
		return ordered[i].Email < ordered[j].Email
	})
	return ordered
}

// joinGroup tries to add the applicant to an existing open group. The
// score callback ranks admissible groups; a nil score accepts the first
// admissible group in commit order.
func (b *builder) joinGroup(a *models.Applicant, score func(iv models.Interview) int) bool {
	bestID := ""
	bestScore := 0
	var bestSlot models.TimeSlot
	bestRoom := ""
	for i := range b.interviews {
		iv := b.interviews[i]
		if iv.Type != models.InterviewGroup || len(iv.Applicants) >= b.cfg.GroupMaxApplicants {
			continue
		}
		if !b.avail.Available(KindApplicant, a.Email, iv.Slot) || b.occ.Busy(KindApplicant, a.Email, iv.Slot) {
			continue
		}
		// Admit the extended panel with the group's own bookings released,
		// otherwise the group blocks itself.
		b.occ.Release(iv)
		extended := Candidate{
			Type:       models.InterviewGroup,
			Slot:       iv.Slot,
			Applicants: append(append([]string(nil), iv.Applicants...), a.Email),
			Recruiters: iv.Recruiters,
			RoomID:     iv.RoomID,
		}
		verdict := b.oracle.Admit(extended, b.occ)
		b.occ.Commit(iv)
		if !verdict.OK {
			continue
		}
		sc := 0
		if score != nil {
			sc = score(iv)
		}
		better := bestID == "" || sc > bestScore
		if !better && sc == bestScore {
			if iv.Slot.Start.Before(bestSlot.Start) {
				better = true
			} else if iv.Slot.Start.Equal(bestSlot.Start) && iv.RoomID < bestRoom {
				better = true
			}
		}
		if better {
			bestID, bestScore, bestSlot, bestRoom = iv.ID, sc, iv.Slot, iv.RoomID
		}
		if score == nil {
			break
		}
	}
	if bestID == "" {
		return false
	}
	iv, _ := b.uncommit(bestID)
	b.commit(Candidate{
		Type:       models.InterviewGroup,
		Slot:       iv.Slot,
		Applicants: append(iv.Applicants, a.Email),
		Recruiters: iv.Recruiters,
		RoomID:     iv.RoomID,
	})
	return true
}

// openGroup forms a new group anchored on the applicant at the earliest
// admissible slot, pulling in other applicants who still need a group.
// pickRecruiters chooses the panel from the free recruiters at that slot.
func (b *builder) openGroup(a *models.Applicant, pickRecruiters func(free []*models.Recruiter, members []string) []string) bool {
	for _, slot := range b.grid.ForType(b.cfg, models.InterviewGroup) {
		if !b.applicantFree(a.Email, slot) {
			continue
		}
		rooms := b.freeRooms(slot)
		if len(rooms) == 0 {
			continue
		}
		free := b.freeRecruiters(slot)
		if len(free) < b.cfg.GroupMinRecruiters {
			continue
		}
		members := []string{a.Email}
		for _, other := range b.applicants {
			if len(members) >= b.cfg.GroupMaxApplicants {
				break
			}
			if other.Email == a.Email || b.hasGroup[other.Email] {
				continue
			}
			if b.applicantFree(other.Email, slot) {
				members = append(members, other.Email)
			}
		}
		if len(members) < b.cfg.GroupMinApplicants {
			continue
		}
		cand := Candidate{
			Type:       models.InterviewGroup,
			Slot:       slot,
			Applicants: members,
			Recruiters: pickRecruiters(free, members),
			RoomID:     rooms[0].ID,
		}
		if verdict := b.oracle.Admit(cand, b.occ); verdict.OK {
			b.commit(cand)
			return true
		}
	}
	return false
}

// individualOption is one admissible placement for an individual interview.
type individualOption struct {
	slot        models.TimeSlot
	roomID      string
	recruiterID string
}

// findIndividual scans slots earliest-first, restricted to the given
// recruiters. With an anchor set, the earliest option inside the spacing
// window of the anchor start wins over earlier options outside it; the
// preference is soft, so the earliest option overall is the fallback.
func (b *builder) findIndividual(a *models.Applicant, recruiters []*models.Recruiter, anchor *models.TimeSlot) *individualOption {
	var fallback *individualOption
	for _, slot := range b.grid.ForType(b.cfg, models.InterviewIndividual) {
		if !b.applicantFree(a.Email, slot) {
			continue
		}
		rooms := b.freeRooms(slot)
		if len(rooms) == 0 {
			continue
		}
		var chosen *models.Recruiter
		for _, r := range recruiters {
			if b.avail.Available(KindRecruiter, r.ID, slot) && !b.occ.Busy(KindRecruiter, r.ID, slot) {
				chosen = r
				break
			}
		}
		if chosen == nil {
			continue
		}
		opt := &individualOption{slot: slot, roomID: rooms[0].ID, recruiterID: chosen.ID}
		if anchor == nil || slot.StartGap(*anchor) <= b.cfg.SpacingWindow {
			return opt
		}
		if fallback == nil {
			fallback = opt
		}
	}
	return fallback
}

// commitIndividual books an option after a final oracle check.
func (b *builder) commitIndividual(a *models.Applicant, opt *individualOption) bool {
	cand := Candidate{
		Type:       models.InterviewIndividual,
		Slot:       opt.slot,
		Applicants: []string{a.Email},
		Recruiters: []string{opt.recruiterID},
		RoomID:     opt.roomID,
	}
	if verdict := b.oracle.Admit(cand, b.occ); !verdict.OK {
		return false
	}
	b.commit(cand)
	return true
}

// schedule snapshots the builder into an immutable candidate schedule.
func (b *builder) schedule(name string) *models.Schedule {
	s := &models.Schedule{
		Strategy:   name,
		Interviews: append([]models.Interview(nil), b.interviews...),
	}
	for _, a := range b.applicants {
		if !b.hasGroup[a.Email] {
			s.UnscheduledGroup = append(s.UnscheduledGroup, a.Email)
		}
		if !b.hasIndividual[a.Email] {
			s.UnscheduledIndividual = append(s.UnscheduledIndividual, a.Email)
		}
	}
	s.SortInterviews()
	return s
}
