package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

var eveningStart = time.Date(2025, time.September, 11, 17, 0, 0, 0, time.UTC)

// evening returns the standard test window, 2025-09-11 17:00-21:00 UTC.
func evening() models.TimeSlot {
	return models.TimeSlot{Start: eveningStart, End: eveningStart.Add(4 * time.Hour)}
}

func eveningConfig() Config {
	w := evening()
	return Config{
		Windows:            []Window{{Start: w.Start, End: w.End}},
		Granularity:        20 * time.Minute,
		GroupDuration:      40 * time.Minute,
		IndividualDuration: 20 * time.Minute,
		GroupMinApplicants: 4,
		GroupMaxApplicants: 8,
		GroupMinRecruiters: 4,
		SpacingWindow:      90 * time.Minute,
		RefineIterations:   40,
		Parallel:           false,
	}
}

func applicantFixture(email string, team models.Team, avail ...models.TimeSlot) *models.Applicant {
	if len(avail) == 0 {
		avail = []models.TimeSlot{evening()}
	}
	return &models.Applicant{
		Email:        email,
		Name:         email,
		Teams:        []models.Team{team},
		Availability: avail,
	}
}

func recruiterFixture(id string, team models.Team, avail ...models.TimeSlot) *models.Recruiter {
	if len(avail) == 0 {
		avail = []models.TimeSlot{evening()}
	}
	return &models.Recruiter{ID: id, Name: id, Team: team, Availability: avail}
}

func roomFixture(id string, avail ...models.TimeSlot) *models.Room {
	if len(avail) == 0 {
		avail = []models.TimeSlot{evening()}
	}
	return &models.Room{ID: id, Availability: avail}
}

// eveningRoster is the default world: five applicants across four teams,
// one recruiter per team plus a floater, two rooms, everyone free all
// evening.
func eveningRoster() (applicants []*models.Applicant, recruiters []*models.Recruiter, rooms []*models.Room) {
	applicants = []*models.Applicant{
		applicantFixture("a1@luma.test", models.TeamAstra),
		applicantFixture("a2@luma.test", models.TeamJuvo),
		applicantFixture("a3@luma.test", models.TeamInfinitum),
		applicantFixture("a4@luma.test", models.TeamTerra),
		applicantFixture("a5@luma.test", models.TeamAstra),
	}
	recruiters = []*models.Recruiter{
		recruiterFixture("r1", models.TeamAstra),
		recruiterFixture("r2", models.TeamJuvo),
		recruiterFixture("r3", models.TeamInfinitum),
		recruiterFixture("r4", models.TeamTerra),
		recruiterFixture("r5", models.TeamAll),
	}
	rooms = []*models.Room{roomFixture("room-a"), roomFixture("room-b")}
	return applicants, recruiters, rooms
}

func newEngineFixture(t *testing.T, cfg Config, applicants []*models.Applicant, recruiters []*models.Recruiter, rooms []*models.Room) *Engine {
	t.Helper()
	engine, err := New(cfg, applicants, recruiters, rooms, zap.NewNop())
	require.NoError(t, err)
	return engine
}

func slotAt(hour, minute int, duration time.Duration) models.TimeSlot {
	start := time.Date(2025, time.September, 11, hour, minute, 0, 0, time.UTC)
	return models.NewTimeSlot(start, duration)
}
