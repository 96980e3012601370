package dto

import (
	"time"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// TimeRange is an availability interval in a request payload.
type TimeRange struct {
	Start time.Time `json:"start" binding:"required" validate:"required"`
	End   time.Time `json:"end" binding:"required" validate:"required,gtfield=Start"`
}

// ApplicantInput is one applicant row supplied inline with a request.
type ApplicantInput struct {
	Email        string      `json:"email" binding:"required,email" validate:"required,email"`
	Name         string      `json:"name"`
	Teams        []string    `json:"teams"`
	Availability []TimeRange `json:"availability" binding:"required,min=1,dive" validate:"required,min=1,dive"`
}

// RecruiterInput is one recruiter row supplied inline with a request.
type RecruiterInput struct {
	ID           string      `json:"id" binding:"required" validate:"required"`
	Name         string      `json:"name"`
	Team         string      `json:"team" binding:"required" validate:"required"`
	Availability []TimeRange `json:"availability" binding:"required,min=1,dive" validate:"required,min=1,dive"`
}

// RoomInput is one room row supplied inline with a request.
type RoomInput struct {
	ID           string      `json:"id" binding:"required" validate:"required"`
	Availability []TimeRange `json:"availability" binding:"required,min=1,dive" validate:"required,min=1,dive"`
}

// SchedulerOptions overrides engine knobs for a single request. Zero
// values fall back to the configured defaults.
type SchedulerOptions struct {
	Windows                   []TimeRange `json:"windows" validate:"dive"`
	GranularityMinutes        int         `json:"granularityMinutes" validate:"gte=0"`
	GroupDurationMinutes      int         `json:"groupDurationMinutes" validate:"gte=0"`
	IndividualDurationMinutes int         `json:"individualDurationMinutes" validate:"gte=0"`
	GroupMinApplicants        int         `json:"groupMinApplicants" validate:"gte=0"`
	GroupMaxApplicants        int         `json:"groupMaxApplicants" validate:"gte=0"`
	GroupMinRecruiters        int         `json:"groupMinRecruiters" validate:"gte=0"`
	SpacingWindowMinutes      int         `json:"spacingWindowMinutes" validate:"gte=0"`
	RefineIterations          int         `json:"refineIterations" validate:"gte=0"`
}

// GenerateScheduleRequest carries the full scheduling problem inline.
type GenerateScheduleRequest struct {
	Applicants []ApplicantInput  `json:"applicants" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Recruiters []RecruiterInput  `json:"recruiters" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Rooms      []RoomInput       `json:"rooms" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Options    *SchedulerOptions `json:"options,omitempty"`
}

// StrategyScore reports one strategy's evaluation triple.
type StrategyScore struct {
	Strategy       string  `json:"strategy"`
	FullyScheduled int     `json:"fullyScheduled"`
	WellSpaced     int     `json:"wellSpaced"`
	Quality        float64 `json:"quality"`
}

// InterviewView is one committed interview in a response.
type InterviewView struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	RoomID     string    `json:"roomId"`
	Applicants []string  `json:"applicants"`
	Recruiters []string  `json:"recruiters"`
}

// GenerateScheduleResponse is the proposal produced for one request.
type GenerateScheduleResponse struct {
	ProposalID            string                      `json:"proposalId"`
	Strategy              string                      `json:"strategy"`
	Score                 StrategyScore               `json:"score"`
	Candidates            []StrategyScore             `json:"candidates"`
	Interviews            []InterviewView             `json:"interviews"`
	UnscheduledGroup      []string                    `json:"unscheduledGroup"`
	UnscheduledIndividual []string                    `json:"unscheduledIndividual"`
	Warnings              []models.DataQualityWarning `json:"warnings,omitempty"`
	GeneratedAt           time.Time                   `json:"generatedAt"`
	ElapsedMillis         int64                       `json:"elapsedMillis"`
}
