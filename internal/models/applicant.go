package models

// Applicant is a candidate who needs one group and one individual
// interview. Loaded once and read-only inside the engine.
type Applicant struct {
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Teams        []Team     `json:"teams"`
	Availability []TimeSlot `json:"availability"`
}

// ID returns the applicant identity used throughout the engine.
func (a *Applicant) ID() string {
	return a.Email
}

// InterestedIn reports whether the applicant listed the team.
func (a *Applicant) InterestedIn(team Team) bool {
	for _, t := range a.Teams {
		if t == team {
			return true
		}
	}
	return false
}
