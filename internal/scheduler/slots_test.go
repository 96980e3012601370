package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
)

func TestBuildSlotGridCounts(t *testing.T) {
	grid, err := BuildSlotGrid(eveningConfig())
	require.NoError(t, err)

	// 4h window, 20m steps: 11 starts fit a 40m interview, 12 fit a 20m one.
	assert.Len(t, grid.Slots(40*time.Minute), 11)
	assert.Len(t, grid.Slots(20*time.Minute), 12)
}

func TestBuildSlotGridAlignment(t *testing.T) {
	cfg := eveningConfig()
	grid, err := BuildSlotGrid(cfg)
	require.NoError(t, err)

	window := evening()
	for _, slot := range grid.Slots(cfg.GroupDuration) {
		offset := slot.Start.Sub(window.Start)
		assert.Zero(t, offset%cfg.Granularity, "slot %s off the grid", slot)
		assert.True(t, window.Contains(slot), "slot %s escapes the window", slot)
	}
}

func TestBuildSlotGridDeterministic(t *testing.T) {
	first, err := BuildSlotGrid(eveningConfig())
	require.NoError(t, err)
	second, err := BuildSlotGrid(eveningConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Slots(40*time.Minute), second.Slots(40*time.Minute))
	assert.Equal(t, first.Slots(20*time.Minute), second.Slots(20*time.Minute))
}

func TestBuildSlotGridSharedDurationClass(t *testing.T) {
	cfg := eveningConfig()
	cfg.GroupDuration = 20 * time.Minute
	grid, err := BuildSlotGrid(cfg)
	require.NoError(t, err)

	assert.Len(t, grid.Durations(), 1)
	assert.Len(t, grid.Slots(20*time.Minute), 12)
}

func TestBuildSlotGridRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no windows", func(c *Config) { c.Windows = nil }},
		{"inverted window", func(c *Config) {
			c.Windows[0].Start, c.Windows[0].End = c.Windows[0].End, c.Windows[0].Start
		}},
		{"zero granularity", func(c *Config) { c.Granularity = 0 }},
		{"zero duration", func(c *Config) { c.IndividualDuration = 0 }},
		{"inconsistent group bounds", func(c *Config) { c.GroupMaxApplicants = 2 }},
		{"no recruiters", func(c *Config) { c.GroupMinRecruiters = 0 }},
		{"zero spacing window", func(c *Config) { c.SpacingWindow = 0 }},
		{"negative refine budget", func(c *Config) { c.RefineIterations = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := eveningConfig()
			tc.mutate(&cfg)
			_, err := BuildSlotGrid(cfg)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrConfiguration.Code))
		})
	}
}
