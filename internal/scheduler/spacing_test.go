package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// wideGapBuilder commits a group at 17:00 and a1's individual at 20:40,
// leaving a 220 minute start gap for the refiner to close.
func wideGapBuilder(t *testing.T, cfg Config) *builder {
	t.Helper()
	applicants, recruiters, rooms := eveningRoster()
	engine := newEngineFixture(t, cfg, applicants, recruiters, rooms)
	b := newBuilder(engine)

	b.commit(groupCandidate(cfg))
	b.commit(Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(20, 40, cfg.IndividualDuration),
		Applicants: []string{"a1@luma.test"},
		Recruiters: []string{"r5"},
		RoomID:     "room-b",
	})
	return b
}

func TestSpacingRefinerRelocatesIndividual(t *testing.T) {
	cfg := eveningConfig()
	b := wideGapBuilder(t, cfg)
	refiner := newSpacingRefiner(b)

	before, ok := refiner.gap("a1@luma.test")
	require.True(t, ok)
	require.Equal(t, 220*time.Minute, before)

	refiner.run()

	after, ok := refiner.gap("a1@luma.test")
	require.True(t, ok)
	assert.LessOrEqual(t, after, cfg.SpacingWindow)
	assert.True(t, b.hasIndividual["a1@luma.test"])
	assert.True(t, b.hasGroup["a1@luma.test"])
}

func TestSpacingRefinerHonoursIterationBudget(t *testing.T) {
	cfg := eveningConfig()
	cfg.RefineIterations = 0
	b := wideGapBuilder(t, cfg)
	refiner := newSpacingRefiner(b)

	refiner.run()

	gap, ok := refiner.gap("a1@luma.test")
	require.True(t, ok)
	assert.Equal(t, 220*time.Minute, gap)
}

func TestSpacingRefinerLeavesWellSpacedAlone(t *testing.T) {
	cfg := eveningConfig()
	applicants, recruiters, rooms := eveningRoster()
	engine := newEngineFixture(t, cfg, applicants, recruiters, rooms)
	b := newBuilder(engine)

	b.commit(groupCandidate(cfg))
	near := Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(17, 40, cfg.IndividualDuration),
		Applicants: []string{"a1@luma.test"},
		Recruiters: []string{"r5"},
		RoomID:     "room-b",
	}
	b.commit(near)

	newSpacingRefiner(b).run()

	iv, ok := b.individualFor("a1@luma.test")
	require.True(t, ok)
	assert.Equal(t, near.Slot, iv.Slot)
}

func TestSpacingRefinerKeepsGroupMembersTolerable(t *testing.T) {
	cfg := eveningConfig()
	applicants, recruiters, rooms := eveningRoster()
	// a1 is only around for the group itself and the last hour, so the
	// refiner's sole escape is dragging the whole group to 20:00 or later.
	applicants[0].Availability = []models.TimeSlot{
		slotAt(17, 0, cfg.GroupDuration),
		{Start: eveningStart.Add(3 * time.Hour), End: eveningStart.Add(4 * time.Hour)},
	}
	engine := newEngineFixture(t, cfg, applicants, recruiters, rooms)
	b := newBuilder(engine)

	b.commit(groupCandidate(cfg))
	b.commit(Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(20, 40, cfg.IndividualDuration),
		Applicants: []string{"a1@luma.test"},
		Recruiters: []string{"r5"},
		RoomID:     "room-b",
	})
	// a2's individual sits right next to the group; moving the group to
	// chase a1's distant individual would wreck it.
	b.commit(Candidate{
		Type:       models.InterviewIndividual,
		Slot:       slotAt(17, 40, cfg.IndividualDuration),
		Applicants: []string{"a2@luma.test"},
		Recruiters: []string{"r1"},
		RoomID:     "room-a",
	})

	refiner := newSpacingRefiner(b)
	refiner.run()

	group, ok := b.groupFor("a2@luma.test")
	require.True(t, ok)
	assert.Equal(t, slotAt(17, 0, cfg.GroupDuration), group.Slot, "group must stay put")
	gapA2, ok := refiner.gap("a2@luma.test")
	require.True(t, ok)
	assert.Equal(t, 40*time.Minute, gapA2)
}
