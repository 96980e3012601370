package scheduler

import (
	"time"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// spacingRefiner is the second phase of the two-phase strategy: a bounded
// local search that shrinks the largest start-to-start gaps between each
// applicant's two interviews. Moves are accepted only when the targeted
// gap strictly shrinks and no other applicant's gap grows beyond both the
// spacing window and its pre-refinement baseline, so coverage and the
// hard constraints are never traded away for spacing.
type spacingRefiner struct {
	b        *builder
	baseline map[string]time.Duration
}

func newSpacingRefiner(b *builder) *spacingRefiner {
	r := &spacingRefiner{b: b, baseline: make(map[string]time.Duration)}
	for _, a := range b.applicants {
		if gap, ok := r.gap(a.Email); ok {
			r.baseline[a.Email] = gap
		}
	}
	return r
}

// gap returns the start-to-start distance between the applicant's two
// interviews, if both exist.
func (r *spacingRefiner) gap(email string) (time.Duration, bool) {
	group, ok := r.b.groupFor(email)
	if !ok {
		return 0, false
	}
	individual, ok := r.b.individualFor(email)
	if !ok {
		return 0, false
	}
	return group.Slot.StartGap(individual.Slot), true
}

// run spends the iteration budget on the worst remaining gap. Applicants
// whose gap cannot be improved are frozen until some other move changes
// the schedule around them.
func (r *spacingRefiner) run() {
	frozen := make(map[string]bool)
	for iter := 0; iter < r.b.cfg.RefineIterations; iter++ {
		email, gap, ok := r.worst(frozen)
		if !ok || gap <= r.b.cfg.SpacingWindow {
			return
		}
		if r.relocateIndividual(email) || r.relocateGroup(email) {
			frozen = make(map[string]bool)
			continue
		}
		frozen[email] = true
	}
}

// worst finds the unfrozen applicant with the largest gap, ties broken by
// email order.
func (r *spacingRefiner) worst(frozen map[string]bool) (string, time.Duration, bool) {
	email := ""
	var worst time.Duration
	for _, a := range r.b.applicants {
		if frozen[a.Email] {
			continue
		}
		gap, ok := r.gap(a.Email)
		if !ok {
			continue
		}
		if email == "" || gap > worst {
			email, worst = a.Email, gap
		}
	}
	return email, worst, email != ""
}

// relocateIndividual moves the applicant's individual interview to the
// admissible slot minimising the gap, if one strictly better exists. The
// original recruiter is kept when still free at the new slot.
func (r *spacingRefiner) relocateIndividual(email string) bool {
	b := r.b
	a, ok := b.byEmail[email]
	if !ok {
		return false
	}
	group, ok := b.groupFor(email)
	if !ok {
		return false
	}
	current, ok := b.individualFor(email)
	if !ok {
		return false
	}
	currentGap := group.Slot.StartGap(current.Slot)

	b.uncommit(current.ID)
	pool := relocationPool(b, a, current.Recruiters[0])
	var best *individualOption
	var bestGap time.Duration
	for _, slot := range b.grid.ForType(b.cfg, models.InterviewIndividual) {
		gap := group.Slot.StartGap(slot)
		if gap >= currentGap || (best != nil && gap >= bestGap) {
			continue
		}
		if !b.applicantFree(email, slot) {
			continue
		}
		rooms := b.freeRooms(slot)
		if len(rooms) == 0 {
			continue
		}
		recruiterID := ""
		for _, rec := range pool {
			if b.avail.Available(KindRecruiter, rec.ID, slot) && !b.occ.Busy(KindRecruiter, rec.ID, slot) {
				recruiterID = rec.ID
				break
			}
		}
		if recruiterID == "" {
			continue
		}
		best = &individualOption{slot: slot, roomID: rooms[0].ID, recruiterID: recruiterID}
		bestGap = gap
	}
	if best == nil || !b.commitIndividual(a, best) {
		b.commit(candidateOf(current))
		return false
	}
	return true
}

// relocationPool orders recruiters for an individual move: the incumbent
// first, then recruiters covering the applicant's teams, then the rest.
func relocationPool(b *builder, a *models.Applicant, incumbentID string) []*models.Recruiter {
	var pool []*models.Recruiter
	added := make(map[string]bool)
	if incumbent, ok := b.byRecruiter[incumbentID]; ok {
		pool = append(pool, incumbent)
		added[incumbentID] = true
	}
	for _, r := range matchingRecruiters(b.recruiters, a) {
		if !added[r.ID] {
			added[r.ID] = true
			pool = append(pool, r)
		}
	}
	for _, r := range b.recruiters {
		if !added[r.ID] {
			added[r.ID] = true
			pool = append(pool, r)
		}
	}
	return pool
}

// relocateGroup moves the applicant's whole group closer to their
// individual interview, keeping the same members and panel. Every member
// must be free at the new slot and no member's own gap may grow beyond
// both the spacing window and its baseline.
func (r *spacingRefiner) relocateGroup(email string) bool {
	b := r.b
	group, ok := b.groupFor(email)
	if !ok {
		return false
	}
	individual, ok := b.individualFor(email)
	if !ok {
		return false
	}
	currentGap := group.Slot.StartGap(individual.Slot)

	b.uncommit(group.ID)
	var best *Candidate
	var bestGap time.Duration
	for _, slot := range b.grid.ForType(b.cfg, models.InterviewGroup) {
		gap := slot.StartGap(individual.Slot)
		if gap >= currentGap || (best != nil && gap >= bestGap) {
			continue
		}
		if !r.membersTolerate(group.Applicants, email, slot) {
			continue
		}
		roomID := r.pickRoom(group.RoomID, slot)
		if roomID == "" {
			continue
		}
		cand := Candidate{
			Type:       models.InterviewGroup,
			Slot:       slot,
			Applicants: group.Applicants,
			Recruiters: group.Recruiters,
			RoomID:     roomID,
		}
		if verdict := b.oracle.Admit(cand, b.occ); verdict.OK {
			best = &cand
			bestGap = gap
		}
	}
	if best == nil {
		b.commit(candidateOf(group))
		return false
	}
	b.commit(*best)
	return true
}

// membersTolerate checks every other group member against the candidate
// slot: they must be free there and their own gap must stay within the
// spacing window or their baseline.
func (r *spacingRefiner) membersTolerate(members []string, mover string, slot models.TimeSlot) bool {
	for _, member := range members {
		if !r.b.applicantFree(member, slot) {
			return false
		}
		if member == mover {
			continue
		}
		individual, ok := r.b.individualFor(member)
		if !ok {
			continue
		}
		gap := slot.StartGap(individual.Slot)
		if gap > r.b.cfg.SpacingWindow && gap > r.baseline[member] {
			return false
		}
	}
	return true
}

// pickRoom keeps the group's room when it is free at the new slot, else
// takes the first free room.
func (r *spacingRefiner) pickRoom(incumbentID string, slot models.TimeSlot) string {
	if r.b.avail.Available(KindRoom, incumbentID, slot) && !r.b.occ.Busy(KindRoom, incumbentID, slot) {
		return incumbentID
	}
	for _, room := range r.b.freeRooms(slot) {
		return room.ID
	}
	return ""
}
