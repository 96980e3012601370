package models

import "sort"

// Schedule is one candidate assignment of interviews. Each strategy owns
// its schedule exclusively until it is handed to the evaluator.
type Schedule struct {
	Strategy              string          `json:"strategy"`
	Interviews            []Interview     `json:"interviews"`
	UnscheduledGroup      []string        `json:"unscheduledGroup"`
	UnscheduledIndividual []string        `json:"unscheduledIndividual"`
	Score                 EvaluationScore `json:"score"`
}

// GroupFor returns the committed group interview for the applicant.
func (s *Schedule) GroupFor(email string) (Interview, bool) {
	return s.find(email, InterviewGroup)
}

// IndividualFor returns the committed individual interview for the applicant.
func (s *Schedule) IndividualFor(email string) (Interview, bool) {
	return s.find(email, InterviewIndividual)
}

func (s *Schedule) find(email string, kind InterviewType) (Interview, bool) {
	for i := range s.Interviews {
		if s.Interviews[i].Type == kind && s.Interviews[i].HasApplicant(email) {
			return s.Interviews[i], true
		}
	}
	return Interview{}, false
}

// FullyScheduled returns the sorted emails holding both interview types.
func (s *Schedule) FullyScheduled() []string {
	grouped := make(map[string]bool)
	var emails []string
	for i := range s.Interviews {
		if s.Interviews[i].Type != InterviewGroup {
			continue
		}
		for _, email := range s.Interviews[i].Applicants {
			grouped[email] = true
		}
	}
	for i := range s.Interviews {
		if s.Interviews[i].Type != InterviewIndividual {
			continue
		}
		for _, email := range s.Interviews[i].Applicants {
			if grouped[email] {
				emails = append(emails, email)
			}
		}
	}
	sort.Strings(emails)
	return emails
}

// SortInterviews orders interviews by start time, then type, then room,
// giving every consumer a stable view.
func (s *Schedule) SortInterviews() {
	sort.Slice(s.Interviews, func(i, j int) bool {
		a, b := s.Interviews[i], s.Interviews[j]
		if !a.Slot.Start.Equal(b.Slot.Start) {
			return a.Slot.Start.Before(b.Slot.Start)
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.RoomID < b.RoomID
	})
}

// EvaluationScore ranks candidate schedules. Fields compare
// lexicographically in declaration order.
type EvaluationScore struct {
	FullyScheduled int     `json:"fullyScheduled"`
	WellSpaced     int     `json:"wellSpaced"`
	Quality        float64 `json:"quality"`
}

// Compare returns -1, 0 or 1 ordering s against other; higher is better.
func (s EvaluationScore) Compare(other EvaluationScore) int {
	if s.FullyScheduled != other.FullyScheduled {
		if s.FullyScheduled > other.FullyScheduled {
			return 1
		}
		return -1
	}
	if s.WellSpaced != other.WellSpaced {
		if s.WellSpaced > other.WellSpaced {
			return 1
		}
		return -1
	}
	if s.Quality != other.Quality {
		if s.Quality > other.Quality {
			return 1
		}
		return -1
	}
	return 0
}

// DataQualityWarning records an input value that could not be used. The
// affected entity degrades (usually to empty availability) and the run
// continues.
type DataQualityWarning struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}
