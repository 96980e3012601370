package models

// InterviewType distinguishes the two session kinds.
type InterviewType string

// Interview kinds.
const (
	InterviewGroup      InterviewType = "group"
	InterviewIndividual InterviewType = "individual"
)

// Interview is a committed session. It is created whole by a scheduling
// strategy: either every hard constraint held at creation or the candidate
// was discarded, so a value of this type is never partially valid.
type Interview struct {
	ID         string        `json:"id"`
	Type       InterviewType `json:"type"`
	Slot       TimeSlot      `json:"slot"`
	RoomID     string        `json:"roomId"`
	Applicants []string      `json:"applicants"`
	Recruiters []string      `json:"recruiters"`
}

// HasApplicant reports whether the email participates in this interview.
func (iv *Interview) HasApplicant(email string) bool {
	for _, e := range iv.Applicants {
		if e == email {
			return true
		}
	}
	return false
}

// HasRecruiter reports whether the recruiter is assigned to this interview.
func (iv *Interview) HasRecruiter(id string) bool {
	for _, r := range iv.Recruiters {
		if r == id {
			return true
		}
	}
	return false
}
