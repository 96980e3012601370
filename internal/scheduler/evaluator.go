package scheduler

import (
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// Quality point values. Quality only breaks ties after coverage and
// spacing, so the absolute magnitudes matter less than their ratio: an
// individual interview with a team-matched recruiter is worth two distinct
// teams on a group panel.
const (
	qualityTeamMatch      = 1.0
	qualityPanelDiversity = 0.5
)

// Evaluator scores candidate schedules on the lexicographic triple
// (fully scheduled, well spaced, quality).
type Evaluator struct {
	cfg         Config
	byEmail     map[string]*models.Applicant
	byRecruiter map[string]*models.Recruiter
}

// NewEvaluator indexes the roster for scoring.
func NewEvaluator(cfg Config, applicants []*models.Applicant, recruiters []*models.Recruiter) *Evaluator {
	e := &Evaluator{
		cfg:         cfg,
		byEmail:     make(map[string]*models.Applicant, len(applicants)),
		byRecruiter: make(map[string]*models.Recruiter, len(recruiters)),
	}
	for _, a := range applicants {
		e.byEmail[a.Email] = a
	}
	for _, r := range recruiters {
		e.byRecruiter[r.ID] = r
	}
	return e
}

// Score computes the schedule's evaluation triple.
func (e *Evaluator) Score(s *models.Schedule) models.EvaluationScore {
	full := s.FullyScheduled()
	score := models.EvaluationScore{FullyScheduled: len(full)}
	for _, email := range full {
		group, _ := s.GroupFor(email)
		individual, _ := s.IndividualFor(email)
		if group.Slot.StartGap(individual.Slot) <= e.cfg.SpacingWindow {
			score.WellSpaced++
		}
	}
	for i := range s.Interviews {
		score.Quality += e.interviewQuality(s.Interviews[i])
	}
	return score
}

func (e *Evaluator) interviewQuality(iv models.Interview) float64 {
	switch iv.Type {
	case models.InterviewIndividual:
		a, ok := e.byEmail[iv.Applicants[0]]
		if !ok {
			return 0
		}
		r, ok := e.byRecruiter[iv.Recruiters[0]]
		if !ok {
			return 0
		}
		for _, t := range a.Teams {
			if r.Covers(t) {
				return qualityTeamMatch
			}
		}
		return 0
	case models.InterviewGroup:
		teams := make(map[models.Team]bool)
		for _, id := range iv.Recruiters {
			if r, ok := e.byRecruiter[id]; ok {
				teams[r.Team] = true
			}
		}
		return float64(len(teams)) * qualityPanelDiversity
	}
	return 0
}

// Select picks the best schedule from the ordered candidates, stamping
// each with its score. On an exact score tie the earlier candidate wins,
// so callers list their preferred strategy first.
func (e *Evaluator) Select(candidates []*models.Schedule) *models.Schedule {
	var winner *models.Schedule
	for _, s := range candidates {
		s.Score = e.Score(s)
		if winner == nil || s.Score.Compare(winner.Score) > 0 {
			winner = s
		}
	}
	return winner
}
