package scheduler

import (
	"fmt"
	"time"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/config"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
)

// Window is one contiguous interviewing period on a single day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Config carries every knob the engine honours. Nothing in the engine is
// hardcoded to a particular calendar or capacity set.
type Config struct {
	Windows            []Window
	Granularity        time.Duration
	GroupDuration      time.Duration
	IndividualDuration time.Duration
	GroupMinApplicants int
	GroupMaxApplicants int
	GroupMinRecruiters int
	SpacingWindow      time.Duration
	RefineIterations   int
	Parallel           bool
}

// FromSettings converts loaded application settings into an engine config.
func FromSettings(settings config.SchedulerConfig) (Config, error) {
	cfg := Config{
		Granularity:        settings.Granularity,
		GroupDuration:      settings.GroupDuration,
		IndividualDuration: settings.IndividualDuration,
		GroupMinApplicants: settings.GroupMinApplicants,
		GroupMaxApplicants: settings.GroupMaxApplicants,
		GroupMinRecruiters: settings.GroupMinRecruiters,
		SpacingWindow:      settings.SpacingWindow,
		RefineIterations:   settings.RefineIterations,
		Parallel:           settings.Parallel,
	}
	for _, raw := range settings.Windows {
		slot, err := ParseDateTimeRange(raw)
		if err != nil {
			return Config{}, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, appErrors.ErrConfiguration.Status, fmt.Sprintf("invalid scheduler window %q", raw))
		}
		cfg.Windows = append(cfg.Windows, Window{Start: slot.Start, End: slot.End})
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot schedule against.
func (c Config) Validate() error {
	if len(c.Windows) == 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "at least one day window is required")
	}
	for _, w := range c.Windows {
		if !w.Start.Before(w.End) {
			return appErrors.Clone(appErrors.ErrConfiguration, fmt.Sprintf("window start %s must precede end %s", w.Start, w.End))
		}
	}
	if c.Granularity <= 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "granularity must be positive")
	}
	if c.GroupDuration <= 0 || c.IndividualDuration <= 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "interview durations must be positive")
	}
	if c.GroupMinApplicants < 1 || c.GroupMaxApplicants < c.GroupMinApplicants {
		return appErrors.Clone(appErrors.ErrConfiguration, "group applicant bounds are inconsistent")
	}
	if c.GroupMinRecruiters < 1 {
		return appErrors.Clone(appErrors.ErrConfiguration, "group interviews need at least one recruiter")
	}
	if c.SpacingWindow <= 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "spacing window must be positive")
	}
	if c.RefineIterations < 0 {
		return appErrors.Clone(appErrors.ErrConfiguration, "refine iteration budget cannot be negative")
	}
	return nil
}

// durationClasses returns the distinct interview durations, group first.
func (c Config) durationClasses() []time.Duration {
	if c.GroupDuration == c.IndividualDuration {
		return []time.Duration{c.GroupDuration}
	}
	return []time.Duration{c.GroupDuration, c.IndividualDuration}
}

// durationFor maps an interview type to its configured length.
func (c Config) durationFor(kind models.InterviewType) time.Duration {
	if kind == models.InterviewGroup {
		return c.GroupDuration
	}
	return c.IndividualDuration
}
