package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
)

// Strategy produces one candidate schedule from the shared engine inputs.
type Strategy interface {
	Name() string
	Build() (*models.Schedule, error)
}

// CandidateScore reports how one strategy fared.
type CandidateScore struct {
	Strategy string                 `json:"strategy"`
	Score    models.EvaluationScore `json:"score"`
}

// Result is the outcome of one engine run: the winning schedule plus the
// score of every competing strategy.
type Result struct {
	Winner     *models.Schedule `json:"winner"`
	Candidates []CandidateScore `json:"candidates"`
	Elapsed    time.Duration    `json:"elapsed"`
}

// Engine runs every registered strategy over the same immutable inputs
// and selects the best schedule by lexicographic score.
type Engine struct {
	cfg    Config
	grid   *SlotGrid
	avail  *AvailabilityIndex
	oracle *Oracle
	log    *zap.Logger

	applicants  []*models.Applicant
	recruiters  []*models.Recruiter
	rooms       []*models.Room
	byEmail     map[string]*models.Applicant
	byRecruiter map[string]*models.Recruiter
}

// New validates the configuration, expands the slot grid and resolves all
// availability up front. Inputs are copied and sorted so two engines built
// from the same data behave identically regardless of input order.
func New(cfg Config, applicants []*models.Applicant, recruiters []*models.Recruiter, rooms []*models.Room, log *zap.Logger) (*Engine, error) {
	grid, err := BuildSlotGrid(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		grid:        grid,
		log:         log,
		applicants:  make([]*models.Applicant, len(applicants)),
		recruiters:  make([]*models.Recruiter, len(recruiters)),
		rooms:       make([]*models.Room, len(rooms)),
		byEmail:     make(map[string]*models.Applicant, len(applicants)),
		byRecruiter: make(map[string]*models.Recruiter, len(recruiters)),
	}
	copy(e.applicants, applicants)
	copy(e.recruiters, recruiters)
	copy(e.rooms, rooms)
	sort.Slice(e.applicants, func(i, j int) bool { return e.applicants[i].Email < e.applicants[j].Email })
	sort.Slice(e.recruiters, func(i, j int) bool { return e.recruiters[i].ID < e.recruiters[j].ID })
	sort.Slice(e.rooms, func(i, j int) bool { return e.rooms[i].ID < e.rooms[j].ID })
	for _, a := range e.applicants {
		e.byEmail[a.Email] = a
	}
	for _, r := range e.recruiters {
		e.byRecruiter[r.ID] = r
	}

	e.avail = BuildAvailabilityIndex(grid, e.applicants, e.recruiters, e.rooms)
	e.oracle = NewOracle(cfg, e.avail)
	return e, nil
}

// Run executes every strategy, scores the candidates and verifies the
// winner against the hard constraints before returning it.
func (e *Engine) Run() (*Result, error) {
	started := time.Now()
	strategies := []Strategy{
		&TwoPhaseStrategy{engine: e},
		&GreedyStrategy{engine: e},
	}

	schedules := make([]*models.Schedule, len(strategies))
	errs := make([]error, len(strategies))
	if e.cfg.Parallel {
		var wg sync.WaitGroup
		for i, s := range strategies {
			wg.Add(1)
			go func(i int, s Strategy) {
				defer wg.Done()
				schedules[i], errs[i] = s.Build()
			}(i, s)
		}
		wg.Wait()
	} else {
		for i, s := range strategies {
			schedules[i], errs[i] = s.Build()
		}
	}
	for i, err := range errs {
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				fmt.Sprintf("strategy %s failed", strategies[i].Name()))
		}
	}

	evaluator := NewEvaluator(e.cfg, e.applicants, e.recruiters)
	winner := evaluator.Select(schedules)

	result := &Result{Winner: winner, Elapsed: time.Since(started)}
	for _, s := range schedules {
		result.Candidates = append(result.Candidates, CandidateScore{Strategy: s.Strategy, Score: s.Score})
		e.log.Info("strategy scored",
			zap.String("strategy", s.Strategy),
			zap.Int("fully_scheduled", s.Score.FullyScheduled),
			zap.Int("well_spaced", s.Score.WellSpaced),
			zap.Float64("quality", s.Score.Quality),
			zap.Int("interviews", len(s.Interviews)),
		)
	}

	if err := e.verify(winner); err != nil {
		return nil, err
	}
	e.log.Info("schedule selected",
		zap.String("strategy", winner.Strategy),
		zap.Int("fully_scheduled", winner.Score.FullyScheduled),
		zap.Int("unscheduled_group", len(winner.UnscheduledGroup)),
		zap.Int("unscheduled_individual", len(winner.UnscheduledIndividual)),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// verify replays the winning schedule against a fresh occupancy index.
// Every interview must still be admissible and no applicant may hold two
// interviews of the same type. A failure here is a bug in a strategy, not
// bad input, so the run aborts.
func (e *Engine) verify(s *models.Schedule) error {
	occ := NewOccupancy()
	byType := make(map[string]map[models.InterviewType]bool)
	for i := range s.Interviews {
		iv := s.Interviews[i]
		if verdict := e.oracle.Admit(candidateOf(iv), occ); !verdict.OK {
			return appErrors.Wrap(
				fmt.Errorf("interview %s rejected: %s (%s)", iv.ID, verdict.Reason, verdict.Entity),
				appErrors.ErrInvariant.Code, appErrors.ErrInvariant.Status, appErrors.ErrInvariant.Message)
		}
		occ.Commit(iv)
		for _, email := range iv.Applicants {
			if byType[email] == nil {
				byType[email] = make(map[models.InterviewType]bool)
			}
			if byType[email][iv.Type] {
				return appErrors.Wrap(
					fmt.Errorf("applicant %s holds two %s interviews", email, iv.Type),
					appErrors.ErrInvariant.Code, appErrors.ErrInvariant.Status, appErrors.ErrInvariant.Message)
			}
			byType[email][iv.Type] = true
		}
	}
	return nil
}
