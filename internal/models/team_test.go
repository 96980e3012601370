package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTeams(t *testing.T) {
	assert.Equal(t, []Team{TeamAstra, TeamTerra}, ParseTeams("Astra, Terra"))
	assert.Equal(t, []Team{TeamJuvo}, ParseTeams("I want to join Juvo please"))
	assert.Nil(t, ParseTeams("none of the above"))
}

func TestParseTeam(t *testing.T) {
	team, ok := ParseTeam(" astra ")
	assert.True(t, ok)
	assert.Equal(t, TeamAstra, team)

	team, ok = ParseTeam("ALL")
	assert.True(t, ok)
	assert.Equal(t, TeamAll, team)

	_, ok = ParseTeam("Quidditch")
	assert.False(t, ok)
}

func TestTeamMatches(t *testing.T) {
	assert.True(t, TeamAll.Matches(TeamTerra))
	assert.True(t, TeamJuvo.Matches(TeamJuvo))
	assert.False(t, TeamJuvo.Matches(TeamTerra))
}
