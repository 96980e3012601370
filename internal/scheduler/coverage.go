package scheduler

import (
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// TwoPhaseStrategy builds coverage first and repairs spacing second. Phase
// one places every applicant it can, most-constrained first, preferring
// groups with shared team interest and panels spanning several teams.
// Phase two runs the bounded spacing refiner over the committed schedule.
type TwoPhaseStrategy struct {
	engine *Engine
}

// Name identifies the strategy in scores, logs and reports.
func (s *TwoPhaseStrategy) Name() string { return "two_phase" }

// Build produces this strategy's candidate schedule.
func (s *TwoPhaseStrategy) Build() (*models.Schedule, error) {
	b := newBuilder(s.engine)
	s.assignGroups(b)
	s.assignIndividuals(b)
	newSpacingRefiner(b).run()
	return b.schedule(s.Name()), nil
}

func (s *TwoPhaseStrategy) assignGroups(b *builder) {
	for _, a := range b.scarcityOrder() {
		if b.hasGroup[a.Email] {
			continue
		}
		applicant := a
		if b.joinGroup(applicant, func(iv models.Interview) int {
			return s.groupAffinity(b, applicant, iv)
		}) {
			continue
		}
		b.openGroup(applicant, pickDiversePanel(b.cfg.GroupMinRecruiters))
	}
}

// groupAffinity ranks an open group for one applicant: each co-applicant
// sharing a team interest counts double, each panel recruiter covering one
// of the applicant's teams counts once.
func (s *TwoPhaseStrategy) groupAffinity(b *builder, a *models.Applicant, iv models.Interview) int {
	affinity := 0
	for _, email := range iv.Applicants {
		other, ok := b.byEmail[email]
		if !ok {
			continue
		}
		for _, t := range other.Teams {
			if a.InterestedIn(t) {
				affinity += 2
				break
			}
		}
	}
	for _, id := range iv.Recruiters {
		r, ok := b.byRecruiter[id]
		if !ok {
			continue
		}
		for _, t := range a.Teams {
			if r.Covers(t) {
				affinity++
				break
			}
		}
	}
	return affinity
}

// pickDiversePanel selects a group panel of the given size from the free
// recruiters, greedily taking recruiters who introduce a team not yet on
// the panel, then filling the remainder in ID order.
func pickDiversePanel(size int) func(free []*models.Recruiter, members []string) []string {
	return func(free []*models.Recruiter, members []string) []string {
		seen := make(map[models.Team]bool)
		picked := make(map[string]bool)
		var panel []string
		for _, r := range free {
			if len(panel) >= size {
				break
			}
			if !seen[r.Team] {
				seen[r.Team] = true
				picked[r.ID] = true
				panel = append(panel, r.ID)
			}
		}
		for _, r := range free {
			if len(panel) >= size {
				break
			}
			if !picked[r.ID] {
				picked[r.ID] = true
				panel = append(panel, r.ID)
			}
		}
		return panel
	}
}

// assignIndividuals runs two sweeps over the unserved applicants: first
// restricted to recruiters covering one of the applicant's teams, then
// open to any recruiter, so a team mismatch never costs coverage.
func (s *TwoPhaseStrategy) assignIndividuals(b *builder) {
	for sweep := 0; sweep < 2; sweep++ {
		for _, a := range b.scarcityOrder() {
			if b.hasIndividual[a.Email] {
				continue
			}
			pool := b.recruiters
			if sweep == 0 {
				pool = matchingRecruiters(b.recruiters, a)
				if len(pool) == 0 {
					continue
				}
			}
			var anchor *models.TimeSlot
			if g, ok := b.groupFor(a.Email); ok {
				slot := g.Slot
				anchor = &slot
			}
			if opt := b.findIndividual(a, pool, anchor); opt != nil {
				b.commitIndividual(a, opt)
			}
		}
	}
}

// matchingRecruiters filters the pool to recruiters covering at least one
// of the applicant's teams, preserving ID order.
func matchingRecruiters(pool []*models.Recruiter, a *models.Applicant) []*models.Recruiter {
	var matched []*models.Recruiter
	for _, r := range pool {
		for _, t := range a.Teams {
			if r.Covers(t) {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched
}
