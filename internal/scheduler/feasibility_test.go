package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

func newOracleFixture(t *testing.T) (*Oracle, Config) {
	t.Helper()
	cfg := eveningConfig()
	grid, err := BuildSlotGrid(cfg)
	require.NoError(t, err)
	applicants, recruiters, rooms := eveningRoster()
	ix := BuildAvailabilityIndex(grid, applicants, recruiters, rooms)
	return NewOracle(cfg, ix), cfg
}

func groupCandidate(cfg Config) Candidate {
	return Candidate{
		Type:       models.InterviewGroup,
		Slot:       slotAt(17, 0, cfg.GroupDuration),
		Applicants: []string{"a1@luma.test", "a2@luma.test", "a3@luma.test", "a4@luma.test"},
		Recruiters: []string{"r1", "r2", "r3", "r4"},
		RoomID:     "room-a",
	}
}

func TestOracleAdmitGroup(t *testing.T) {
	oracle, cfg := newOracleFixture(t)

	verdict := oracle.Admit(groupCandidate(cfg), NewOccupancy())
	assert.True(t, verdict.OK)
	assert.Equal(t, ReasonNone, verdict.Reason)
}

func TestOracleAdmitGroupCardinality(t *testing.T) {
	oracle, cfg := newOracleFixture(t)

	tooFew := groupCandidate(cfg)
	tooFew.Applicants = tooFew.Applicants[:3]
	assert.Equal(t, ReasonCardinality, oracle.Admit(tooFew, NewOccupancy()).Reason)

	thinPanel := groupCandidate(cfg)
	thinPanel.Recruiters = thinPanel.Recruiters[:3]
	assert.Equal(t, ReasonCardinality, oracle.Admit(thinPanel, NewOccupancy()).Reason)
}

func TestOracleAdmitIndividualCardinality(t *testing.T) {
	oracle, cfg := newOracleFixture(t)

	cand := Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(17, 0, cfg.IndividualDuration),
		Applicants: []string{"a1@luma.test", "a2@luma.test"},
		Recruiters: []string{"r1"},
		RoomID:     "room-a",
	}
	assert.Equal(t, ReasonCardinality, oracle.Admit(cand, NewOccupancy()).Reason)
}

func TestOracleAdmitUnavailableEntity(t *testing.T) {
	oracle, cfg := newOracleFixture(t)

	cand := groupCandidate(cfg)
	cand.Applicants[0] = "stranger@luma.test"
	verdict := oracle.Admit(cand, NewOccupancy())
	assert.Equal(t, ReasonUnavailable, verdict.Reason)
	assert.Equal(t, "stranger@luma.test", verdict.Entity)
}

func TestOracleAdmitBookedEntity(t *testing.T) {
	oracle, cfg := newOracleFixture(t)

	occ := NewOccupancy()
	occ.Commit(groupCandidate(cfg).Interview())

	// Same room, overlapping start.
	clash := Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(17, 20, cfg.IndividualDuration),
		Applicants: []string{"a5@luma.test"},
		Recruiters: []string{"r5"},
		RoomID:     "room-a",
	}
	verdict := oracle.Admit(clash, occ)
	assert.Equal(t, ReasonBooked, verdict.Reason)
	assert.Equal(t, "room-a", verdict.Entity)
}

func TestCandidateInterviewDeterministicID(t *testing.T) {
	cfg := eveningConfig()
	first := groupCandidate(cfg).Interview()
	second := groupCandidate(cfg).Interview()
	assert.Equal(t, first.ID, second.ID)
	assert.NotEmpty(t, first.ID)
}

func TestOccupancyCommitRelease(t *testing.T) {
	cfg := eveningConfig()
	occ := NewOccupancy()
	iv := groupCandidate(cfg).Interview()

	occ.Commit(iv)
	assert.True(t, occ.Busy(KindRoom, "room-a", iv.Slot))
	assert.True(t, occ.Busy(KindApplicant, "a1@luma.test", slotAt(17, 20, cfg.IndividualDuration)))
	assert.False(t, occ.Busy(KindRecruiter, "r5", iv.Slot))

	occ.Release(iv)
	assert.False(t, occ.Busy(KindRoom, "room-a", iv.Slot))
	assert.False(t, occ.Busy(KindApplicant, "a1@luma.test", iv.Slot))
}
