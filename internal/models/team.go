package models

import "strings"

// Team identifies one of the recruiting teams an applicant can interview for.
type Team string

// Known teams. TeamAll is a recruiter-only wildcard that matches every
// applicant interest.
const (
	TeamAstra     Team = "Astra"
	TeamJuvo      Team = "Juvo"
	TeamInfinitum Team = "Infinitum"
	TeamTerra     Team = "Terra"
	TeamAll       Team = "All"
)

// Teams lists the concrete teams in canonical order.
var Teams = []Team{TeamAstra, TeamJuvo, TeamInfinitum, TeamTerra}

// ParseTeams extracts team interests from a free-text answer such as
// "Astra, Terra". Unknown fragments are ignored.
func ParseTeams(raw string) []Team {
	var teams []Team
	for _, team := range Teams {
		if strings.Contains(raw, string(team)) {
			teams = append(teams, team)
		}
	}
	return teams
}

// ParseTeam normalises a single team value, accepting the wildcard "All".
func ParseTeam(raw string) (Team, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, string(TeamAll)) {
		return TeamAll, true
	}
	for _, team := range Teams {
		if strings.EqualFold(trimmed, string(team)) {
			return team, true
		}
	}
	return "", false
}

// Matches reports whether a recruiter on team t can cover an applicant
// interested in target. The wildcard covers every team.
func (t Team) Matches(target Team) bool {
	return t == TeamAll || t == target
}
