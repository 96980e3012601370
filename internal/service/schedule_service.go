package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/dto"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/scheduler"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/config"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/export"
)

// ScheduleService turns inline roster payloads into schedule proposals.
// Proposals live in an in-process TTL store; nothing is persisted.
type ScheduleService struct {
	settings config.SchedulerConfig
	log      *zap.Logger
	metrics  *MetricsService
	validate *validator.Validate
	store    *proposalStore
	now      func() time.Time
}

// NewScheduleService wires the service.
func NewScheduleService(settings config.SchedulerConfig, metrics *MetricsService, log *zap.Logger) *ScheduleService {
	return &ScheduleService{
		settings: settings,
		log:      log,
		metrics:  metrics,
		validate: validator.New(),
		store:    newProposalStore(settings.ProposalTTL),
		now:      time.Now,
	}
}

// Generate runs the engine over the request's rosters and stores the
// resulting proposal.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "request cancelled")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule request")
	}

	cfg, err := s.engineConfig(req.Options)
	if err != nil {
		return nil, err
	}
	applicants, recruiters, rooms, warnings := convertRosters(req)

	engine, err := scheduler.New(cfg, applicants, recruiters, rooms, s.log)
	if err != nil {
		return nil, err
	}
	result, err := engine.Run()
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSchedulerRun(result.Winner.Strategy, result.Elapsed, len(applicants), result.Winner.Score.FullyScheduled)

	resp := buildResponse(uuid.NewString(), result, warnings, s.now())
	s.store.Save(*resp)
	s.log.Info("proposal generated",
		zap.String("proposal_id", resp.ProposalID),
		zap.String("strategy", resp.Strategy),
		zap.Int("fully_scheduled", resp.Score.FullyScheduled),
		zap.Int("applicants", len(applicants)),
	)
	return resp, nil
}

// Get returns a stored proposal, or NOT_FOUND once it expired.
func (s *ScheduleService) Get(ctx context.Context, id string) (*dto.GenerateScheduleResponse, error) {
	proposal, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	return &proposal, nil
}

// Report renders a stored proposal's interview table as CSV, in the same
// shape as the batch main schedule report.
func (s *ScheduleService) Report(ctx context.Context, id string) ([]byte, error) {
	proposal, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	data := export.Dataset{
		Headers: []string{"Time", "Type", "Room", "Recruiters", "Applicants"},
	}
	for _, iv := range proposal.Interviews {
		slot := models.TimeSlot{Start: iv.Start, End: iv.End}
		data.Rows = append(data.Rows, []string{
			slot.String(),
			iv.Type,
			iv.RoomID,
			strings.Join(iv.Recruiters, "; "),
			strings.Join(iv.Applicants, "; "),
		})
	}
	out, err := export.NewCSVExporter().Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cannot render proposal report")
	}
	return out, nil
}

// Delete discards a stored proposal.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if _, ok := s.store.Get(id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	s.store.Delete(id)
	return nil
}

// engineConfig merges per-request overrides onto the configured defaults.
func (s *ScheduleService) engineConfig(opts *dto.SchedulerOptions) (scheduler.Config, error) {
	cfg, err := scheduler.FromSettings(s.settings)
	if err != nil {
		return scheduler.Config{}, err
	}
	if opts == nil {
		return cfg, nil
	}
	if len(opts.Windows) > 0 {
		cfg.Windows = nil
		for _, w := range opts.Windows {
			cfg.Windows = append(cfg.Windows, scheduler.Window{Start: w.Start.UTC(), End: w.End.UTC()})
		}
	}
	if opts.GranularityMinutes > 0 {
		cfg.Granularity = time.Duration(opts.GranularityMinutes) * time.Minute
	}
	if opts.GroupDurationMinutes > 0 {
		cfg.GroupDuration = time.Duration(opts.GroupDurationMinutes) * time.Minute
	}
	if opts.IndividualDurationMinutes > 0 {
		cfg.IndividualDuration = time.Duration(opts.IndividualDurationMinutes) * time.Minute
	}
	if opts.GroupMinApplicants > 0 {
		cfg.GroupMinApplicants = opts.GroupMinApplicants
	}
	if opts.GroupMaxApplicants > 0 {
		cfg.GroupMaxApplicants = opts.GroupMaxApplicants
	}
	if opts.GroupMinRecruiters > 0 {
		cfg.GroupMinRecruiters = opts.GroupMinRecruiters
	}
	if opts.SpacingWindowMinutes > 0 {
		cfg.SpacingWindow = time.Duration(opts.SpacingWindowMinutes) * time.Minute
	}
	if opts.RefineIterations > 0 {
		cfg.RefineIterations = opts.RefineIterations
	}
	if err := cfg.Validate(); err != nil {
		return scheduler.Config{}, err
	}
	return cfg, nil
}

// convertRosters maps request payloads onto domain models, collecting
// warnings for values that degrade instead of failing the request.
func convertRosters(req dto.GenerateScheduleRequest) ([]*models.Applicant, []*models.Recruiter, []*models.Room, []models.DataQualityWarning) {
	var warnings []models.DataQualityWarning

	applicants := make([]*models.Applicant, 0, len(req.Applicants))
	for _, in := range req.Applicants {
		a := &models.Applicant{Email: in.Email, Name: in.Name}
		for _, raw := range in.Teams {
			team, ok := models.ParseTeam(raw)
			if !ok || team == models.TeamAll {
				warnings = append(warnings, models.DataQualityWarning{
					Entity: in.Email, Field: "teams", Raw: raw, Reason: "not an applicant team",
				})
				continue
			}
			a.Teams = append(a.Teams, team)
		}
		for _, w := range in.Availability {
			a.Availability = append(a.Availability, models.TimeSlot{Start: w.Start.UTC(), End: w.End.UTC()})
		}
		applicants = append(applicants, a)
	}

	recruiters := make([]*models.Recruiter, 0, len(req.Recruiters))
	for _, in := range req.Recruiters {
		team, ok := models.ParseTeam(in.Team)
		if !ok {
			team = models.TeamAll
			warnings = append(warnings, models.DataQualityWarning{
				Entity: in.ID, Field: "team", Raw: in.Team, Reason: "unknown team, treating recruiter as a floater",
			})
		}
		r := &models.Recruiter{ID: in.ID, Name: in.Name, Team: team}
		for _, w := range in.Availability {
			r.Availability = append(r.Availability, models.TimeSlot{Start: w.Start.UTC(), End: w.End.UTC()})
		}
		recruiters = append(recruiters, r)
	}

	rooms := make([]*models.Room, 0, len(req.Rooms))
	for _, in := range req.Rooms {
		room := &models.Room{ID: in.ID}
		for _, w := range in.Availability {
			room.Availability = append(room.Availability, models.TimeSlot{Start: w.Start.UTC(), End: w.End.UTC()})
		}
		rooms = append(rooms, room)
	}

	return applicants, recruiters, rooms, warnings
}

func buildResponse(proposalID string, result *scheduler.Result, warnings []models.DataQualityWarning, at time.Time) *dto.GenerateScheduleResponse {
	winner := result.Winner
	resp := &dto.GenerateScheduleResponse{
		ProposalID:            proposalID,
		Strategy:              winner.Strategy,
		Score:                 strategyScore(winner.Strategy, winner.Score),
		UnscheduledGroup:      winner.UnscheduledGroup,
		UnscheduledIndividual: winner.UnscheduledIndividual,
		Warnings:              warnings,
		GeneratedAt:           at,
		ElapsedMillis:         result.Elapsed.Milliseconds(),
	}
	for _, c := range result.Candidates {
		resp.Candidates = append(resp.Candidates, strategyScore(c.Strategy, c.Score))
	}
	for _, iv := range winner.Interviews {
		resp.Interviews = append(resp.Interviews, dto.InterviewView{
			ID:         iv.ID,
			Type:       string(iv.Type),
			Start:      iv.Slot.Start,
			End:        iv.Slot.End,
			RoomID:     iv.RoomID,
			Applicants: iv.Applicants,
			Recruiters: iv.Recruiters,
		})
	}
	return resp
}

func strategyScore(name string, score models.EvaluationScore) dto.StrategyScore {
	return dto.StrategyScore{
		Strategy:       name,
		FullyScheduled: score.FullyScheduled,
		WellSpaced:     score.WellSpaced,
		Quality:        score.Quality,
	}
}

// proposalStore keeps generated proposals in memory until their TTL runs
// out. Reads of expired entries evict them lazily.
type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]storedProposal
}

type storedProposal struct {
	response  dto.GenerateScheduleResponse
	createdAt time.Time
}

func newProposalStore(ttl time.Duration) *proposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &proposalStore{ttl: ttl, items: make(map[string]storedProposal)}
}

func (s *proposalStore) Save(resp dto.GenerateScheduleResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[resp.ProposalID] = storedProposal{response: resp, createdAt: time.Now()}
}

func (s *proposalStore) Get(id string) (dto.GenerateScheduleResponse, bool) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return dto.GenerateScheduleResponse{}, false
	}
	if time.Since(item.createdAt) > s.ttl {
		s.Delete(id)
		return dto.GenerateScheduleResponse{}, false
	}
	return item.response, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
