package models

// Recruiter conducts interviews on behalf of a single team, or every team
// when the wildcard is used.
type Recruiter struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Team         Team       `json:"team"`
	Availability []TimeSlot `json:"availability"`
}

// Covers reports whether the recruiter can represent the given interest.
func (r *Recruiter) Covers(team Team) bool {
	return r.Team.Matches(team)
}
