package scheduler

import (
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// GreedyStrategy is the baseline competitor: a single pass in scarcity
// order taking the first admissible placement every time. No team
// affinity, no panel diversity, no spacing preference, no refinement.
type GreedyStrategy struct {
	engine *Engine
}

// Name identifies the strategy in scores, logs and reports.
func (s *GreedyStrategy) Name() string { return "greedy" }

// Build produces this strategy's candidate schedule.
func (s *GreedyStrategy) Build() (*models.Schedule, error) {
	b := newBuilder(s.engine)
	for _, a := range b.scarcityOrder() {
		if b.hasGroup[a.Email] {
			continue
		}
		if !b.joinGroup(a, nil) {
			b.openGroup(a, firstRecruiters(b.cfg.GroupMinRecruiters))
		}
	}
	for _, a := range b.scarcityOrder() {
		if b.hasIndividual[a.Email] {
			continue
		}
		if opt := b.findIndividual(a, b.recruiters, nil); opt != nil {
			b.commitIndividual(a, opt)
		}
	}
	return b.schedule(s.Name()), nil
}

// firstRecruiters takes the panel straight off the front of the free list.
func firstRecruiters(size int) func(free []*models.Recruiter, members []string) []string {
	return func(free []*models.Recruiter, members []string) []string {
		var panel []string
		for _, r := range free {
			if len(panel) >= size {
				break
			}
			panel = append(panel, r.ID)
		}
		return panel
	}
}
