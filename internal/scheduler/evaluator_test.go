package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

func TestEvaluationScoreCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b models.EvaluationScore
		want int
	}{
		{"coverage dominates", models.EvaluationScore{FullyScheduled: 5}, models.EvaluationScore{FullyScheduled: 4, WellSpaced: 4, Quality: 99}, 1},
		{"spacing breaks coverage tie", models.EvaluationScore{FullyScheduled: 5, WellSpaced: 3}, models.EvaluationScore{FullyScheduled: 5, WellSpaced: 4}, -1},
		{"quality breaks remaining tie", models.EvaluationScore{FullyScheduled: 5, WellSpaced: 5, Quality: 2}, models.EvaluationScore{FullyScheduled: 5, WellSpaced: 5, Quality: 1}, 1},
		{"exact tie", models.EvaluationScore{FullyScheduled: 5, WellSpaced: 5, Quality: 2}, models.EvaluationScore{FullyScheduled: 5, WellSpaced: 5, Quality: 2}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
			assert.Equal(t, -tc.want, tc.b.Compare(tc.a))
		})
	}
}

func evaluatorScheduleFixture(cfg Config) *models.Schedule {
	group := Candidate{
		Type:       models.InterviewGroup,
		Slot:       slotAt(17, 0, cfg.GroupDuration),
		Applicants: []string{"a1@luma.test", "a2@luma.test", "a3@luma.test", "a4@luma.test"},
		Recruiters: []string{"r1", "r2", "r3", "r4"},
		RoomID:     "room-a",
	}
	matched := Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(17, 40, cfg.IndividualDuration),
		Applicants: []string{"a1@luma.test"},
		Recruiters: []string{"r1"},
		RoomID:     "room-a",
	}
	// r3 covers infinitum, a2 wants juvo: no quality point, and the slot
	// sits outside a2's spacing window.
	distant := Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(20, 40, cfg.IndividualDuration),
		Applicants: []string{"a2@luma.test"},
		Recruiters: []string{"r3"},
		RoomID:     "room-b",
	}
	s := &models.Schedule{
		Strategy:   "fixture",
		Interviews: []models.Interview{group.Interview(), matched.Interview(), distant.Interview()},
	}
	s.SortInterviews()
	return s
}

func TestEvaluatorScore(t *testing.T) {
	cfg := eveningConfig()
	applicants, recruiters, _ := eveningRoster()
	evaluator := NewEvaluator(cfg, applicants, recruiters)

	score := evaluator.Score(evaluatorScheduleFixture(cfg))

	// a1 and a2 hold both interviews; only a1's pair is within 90 minutes.
	assert.Equal(t, 2, score.FullyScheduled)
	assert.Equal(t, 1, score.WellSpaced)
	// Panel spans 4 teams (2.0) and one individual is team-matched (1.0).
	assert.InDelta(t, 3.0, score.Quality, 1e-9)
}

func TestEvaluatorSelectPrefersEarlierOnTie(t *testing.T) {
	cfg := eveningConfig()
	applicants, recruiters, _ := eveningRoster()
	evaluator := NewEvaluator(cfg, applicants, recruiters)

	first := evaluatorScheduleFixture(cfg)
	first.Strategy = "two_phase"
	second := evaluatorScheduleFixture(cfg)
	second.Strategy = "greedy"

	winner := evaluator.Select([]*models.Schedule{first, second})
	assert.Same(t, first, winner)
	assert.Equal(t, winner.Score, second.Score)
}

func TestEvaluatorSelectPrefersHigherScore(t *testing.T) {
	cfg := eveningConfig()
	applicants, recruiters, _ := eveningRoster()
	evaluator := NewEvaluator(cfg, applicants, recruiters)

	full := evaluatorScheduleFixture(cfg)
	empty := &models.Schedule{Strategy: "empty"}

	winner := evaluator.Select([]*models.Schedule{empty, full})
	assert.Same(t, full, winner)
}
