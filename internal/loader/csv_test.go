package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const applicantsCSV = "\uFEFF" + `First and Last Name,Email Address,Select the teams are you interested in joining:,"Thursday, September 11, 2025","Saturday, September 13, 2025"
Ada Lovelace,ADA@luma.test,"Astra, Terra",5pm-9pm,
Grace Hopper,grace@luma.test,Juvo,,"9am-12pm, 2pm-5pm"
No Email,,Astra,5pm-9pm,
Dup Licate,ada@luma.test,Juvo,5pm-9pm,
Bad Times,bad@luma.test,Infinitum,9pm-5pm,
`

func TestLoadApplicants(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ApplicantsFile, applicantsCSV)

	applicants, warnings, err := New(zap.NewNop()).LoadApplicants(path)
	require.NoError(t, err)
	require.Len(t, applicants, 3)

	ada := applicants[0]
	assert.Equal(t, "ada@luma.test", ada.Email, "emails are lowercased")
	assert.Equal(t, "Ada Lovelace", ada.Name)
	assert.Equal(t, []models.Team{models.TeamAstra, models.TeamTerra}, ada.Teams)
	require.Len(t, ada.Availability, 1)
	assert.Equal(t, time.Date(2025, time.September, 11, 17, 0, 0, 0, time.UTC), ada.Availability[0].Start)

	grace := applicants[1]
	require.Len(t, grace.Availability, 2)
	assert.Equal(t, time.Date(2025, time.September, 13, 9, 0, 0, 0, time.UTC), grace.Availability[0].Start)
	assert.Equal(t, time.Date(2025, time.September, 13, 14, 0, 0, 0, time.UTC), grace.Availability[1].Start)

	// Skipped empty email, skipped duplicate, bad range dropped plus the
	// resulting empty availability.
	require.Len(t, warnings, 4)
	assert.Equal(t, "row skipped: empty email", warnings[0].Reason)
	assert.Equal(t, "row skipped: duplicate email", warnings[1].Reason)
	assert.Equal(t, "9pm-5pm", warnings[2].Raw)

	// The applicant with only a bad range survives, just unschedulable.
	assert.Equal(t, "bad@luma.test", applicants[2].Email)
	assert.Empty(t, applicants[2].Availability)
}

func TestLoadApplicantsMissingEmailColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ApplicantsFile, "First and Last Name,Teams\nAda,Astra\n")

	_, _, err := New(zap.NewNop()).LoadApplicants(path)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation.Code))
}

const recruitersCSV = `recruiter_id,recruiter_name,team,availability
r1,Rin,Astra,2025-09-11 17:00-21:00;2025-09-13 09:00-21:00
r2,Rei,All,2025-09-11 17:00-21:00
r3,Ryo,Quidditch,2025-09-11 17:00-21:00
,Ghost,Astra,2025-09-11 17:00-21:00
`

func TestLoadRecruiters(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, RecruitersFile, recruitersCSV)

	recruiters, warnings, err := New(zap.NewNop()).LoadRecruiters(path)
	require.NoError(t, err)
	require.Len(t, recruiters, 3)

	assert.Equal(t, models.TeamAstra, recruiters[0].Team)
	assert.Len(t, recruiters[0].Availability, 2)
	assert.Equal(t, models.TeamAll, recruiters[1].Team)

	// Unknown team degrades to the wildcard instead of dropping the row.
	assert.Equal(t, models.TeamAll, recruiters[2].Team)
	require.Len(t, warnings, 2)
	assert.Equal(t, "Quidditch", warnings[0].Raw)
	assert.Equal(t, "row skipped: empty recruiter id", warnings[1].Reason)
}

const roomsCSV = `room_id,availability
room-a,Sep 11 2025 5pm-9pm;Sep 13 2025 9am-9pm
room-b,Sometime later
`

func TestLoadRooms(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, RoomsFile, roomsCSV)

	rooms, warnings, err := New(zap.NewNop()).LoadRooms(path)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Len(t, rooms[0].Availability, 2)
	assert.Equal(t, time.Date(2025, time.September, 13, 9, 0, 0, 0, time.UTC), rooms[0].Availability[1].Start)

	assert.Empty(t, rooms[1].Availability)
	require.Len(t, warnings, 1)
	assert.Equal(t, "room-b", warnings[0].Entity)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ApplicantsFile, applicantsCSV)
	writeFile(t, dir, RecruitersFile, recruitersCSV)
	writeFile(t, dir, RoomsFile, roomsCSV)

	result, err := New(zap.NewNop()).LoadAll(dir)
	require.NoError(t, err)
	assert.Len(t, result.Applicants, 3)
	assert.Len(t, result.Recruiters, 3)
	assert.Len(t, result.Rooms, 2)
	assert.Len(t, result.Warnings, 7)
}

func TestLoadAllMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := New(zap.NewNop()).LoadAll(dir)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound.Code))
}
