package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/scheduler"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
)

// Input file names inside the inputs directory.
const (
	ApplicantsFile = "applicant_information.csv"
	RecruitersFile = "recruiters.csv"
	RoomsFile      = "rooms.csv"
)

// Applicant form column headers. The date columns are recognised by shape
// instead of by name, so the calendar can change without touching code.
const (
	columnName  = "First and Last Name"
	columnEmail = "Email Address"
	columnTeams = "Select the teams are you interested in joining:"
)

// Result bundles the three loaded rosters with every data quality warning
// collected on the way. A warning means a value was dropped and the
// affected entity degraded; it never aborts the load.
type Result struct {
	Applicants []*models.Applicant
	Recruiters []*models.Recruiter
	Rooms      []*models.Room
	Warnings   []models.DataQualityWarning
}

// Loader reads the CSV input tables.
type Loader struct {
	log *zap.Logger
}

// New returns a loader logging through the given logger.
func New(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// LoadAll reads the three standard tables from dir.
func (l *Loader) LoadAll(dir string) (*Result, error) {
	result := &Result{}

	applicants, warnings, err := l.LoadApplicants(filepath.Join(dir, ApplicantsFile))
	if err != nil {
		return nil, err
	}
	result.Applicants = applicants
	result.Warnings = append(result.Warnings, warnings...)

	recruiters, warnings, err := l.LoadRecruiters(filepath.Join(dir, RecruitersFile))
	if err != nil {
		return nil, err
	}
	result.Recruiters = recruiters
	result.Warnings = append(result.Warnings, warnings...)

	rooms, warnings, err := l.LoadRooms(filepath.Join(dir, RoomsFile))
	if err != nil {
		return nil, err
	}
	result.Rooms = rooms
	result.Warnings = append(result.Warnings, warnings...)

	for _, w := range result.Warnings {
		l.log.Warn("input degraded",
			zap.String("entity", w.Entity),
			zap.String("field", w.Field),
			zap.String("raw", w.Raw),
			zap.String("reason", w.Reason),
		)
	}
	l.log.Info("inputs loaded",
		zap.Int("applicants", len(result.Applicants)),
		zap.Int("recruiters", len(result.Recruiters)),
		zap.Int("rooms", len(result.Rooms)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// LoadApplicants parses the signup form export. Availability lives in one
// column per interviewing day, each cell holding ranges like "5pm-9pm",
// separated by commas or semicolons.
func (l *Loader) LoadApplicants(path string) ([]*models.Applicant, []models.DataQualityWarning, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s has no header row", path))
	}

	header := rows[0]
	nameCol, emailCol, teamsCol := -1, -1, -1
	dateCols := make(map[int]time.Time)
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case columnName:
			nameCol = i
		case columnEmail:
			emailCol = i
		case columnTeams:
			teamsCol = i
		default:
			if day, err := scheduler.ParseLongDate(h); err == nil {
				dateCols[i] = day
			}
		}
	}
	if emailCol < 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is missing the %q column", path, columnEmail))
	}

	var applicants []*models.Applicant
	var warnings []models.DataQualityWarning
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		email := strings.ToLower(strings.TrimSpace(cell(row, emailCol)))
		if email == "" {
			warnings = append(warnings, models.DataQualityWarning{
				Entity: cell(row, nameCol), Field: columnEmail, Reason: "row skipped: empty email",
			})
			continue
		}
		if seen[email] {
			warnings = append(warnings, models.DataQualityWarning{
				Entity: email, Field: columnEmail, Raw: email, Reason: "row skipped: duplicate email",
			})
			continue
		}
		seen[email] = true

		a := &models.Applicant{
			Email: email,
			Name:  strings.TrimSpace(cell(row, nameCol)),
			Teams: models.ParseTeams(cell(row, teamsCol)),
		}
		if len(a.Teams) == 0 {
			warnings = append(warnings, models.DataQualityWarning{
				Entity: email, Field: columnTeams, Raw: cell(row, teamsCol), Reason: "no recognised team interest",
			})
		}
		for col := range header {
			day, ok := dateCols[col]
			if !ok {
				continue
			}
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue
			}
			for _, fragment := range splitRanges(raw) {
				slot, err := scheduler.ParseDayRange(fragment, day)
				if err != nil {
					warnings = append(warnings, models.DataQualityWarning{
						Entity: email, Field: header[col], Raw: fragment, Reason: err.Error(),
					})
					continue
				}
				a.Availability = append(a.Availability, slot)
			}
		}
		if len(a.Availability) == 0 {
			warnings = append(warnings, models.DataQualityWarning{
				Entity: email, Field: "availability", Reason: "no usable availability; applicant cannot be scheduled",
			})
		}
		applicants = append(applicants, a)
	}
	return applicants, warnings, nil
}

// LoadRecruiters parses the recruiter roster. Availability uses
// semicolon-separated "2006-01-02 15:04-15:04" ranges.
func (l *Loader) LoadRecruiters(path string) ([]*models.Recruiter, []models.DataQualityWarning, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, nil, err
	}
	cols, err := requireColumns(path, rows, "recruiter_id", "recruiter_name", "team", "availability")
	if err != nil {
		return nil, nil, err
	}

	var recruiters []*models.Recruiter
	var warnings []models.DataQualityWarning
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, cols["recruiter_id"]))
		if id == "" {
			warnings = append(warnings, models.DataQualityWarning{
				Field: "recruiter_id", Reason: "row skipped: empty recruiter id",
			})
			continue
		}
		rawTeam := cell(row, cols["team"])
		team, ok := models.ParseTeam(rawTeam)
		if !ok {
			// An unrecognised team keeps the recruiter usable everywhere
			// rather than dropping them from the pool.
			team = models.TeamAll
			warnings = append(warnings, models.DataQualityWarning{
				Entity: id, Field: "team", Raw: rawTeam, Reason: "unknown team, treating recruiter as a floater",
			})
		}
		r := &models.Recruiter{
			ID:   id,
			Name: strings.TrimSpace(cell(row, cols["recruiter_name"])),
			Team: team,
		}
		for _, fragment := range splitRanges(cell(row, cols["availability"])) {
			slot, err := scheduler.ParseDateTimeRange(fragment)
			if err != nil {
				warnings = append(warnings, models.DataQualityWarning{
					Entity: id, Field: "availability", Raw: fragment, Reason: err.Error(),
				})
				continue
			}
			r.Availability = append(r.Availability, slot)
		}
		recruiters = append(recruiters, r)
	}
	return recruiters, warnings, nil
}

// LoadRooms parses the room roster. Availability uses semicolon-separated
// "Sep 11 2025 5pm-9pm" ranges.
func (l *Loader) LoadRooms(path string) ([]*models.Room, []models.DataQualityWarning, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, nil, err
	}
	cols, err := requireColumns(path, rows, "room_id", "availability")
	if err != nil {
		return nil, nil, err
	}

	var rooms []*models.Room
	var warnings []models.DataQualityWarning
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, cols["room_id"]))
		if id == "" {
			warnings = append(warnings, models.DataQualityWarning{
				Field: "room_id", Reason: "row skipped: empty room id",
			})
			continue
		}
		room := &models.Room{ID: id}
		for _, fragment := range splitRanges(cell(row, cols["availability"])) {
			slot, err := scheduler.ParseMonthDayRange(fragment)
			if err != nil {
				warnings = append(warnings, models.DataQualityWarning{
					Entity: id, Field: "availability", Raw: fragment, Reason: err.Error(),
				})
				continue
			}
			room.Availability = append(room.Availability, slot)
		}
		rooms = append(rooms, room)
	}
	return rooms, warnings, nil
}

// readTable slurps a CSV file, tolerating ragged rows and a UTF-8 BOM.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status,
			fmt.Sprintf("cannot open input table %s", path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("malformed CSV in %s", path))
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return rows, nil
}

// requireColumns maps the named headers to indexes, failing if any is
// absent.
func requireColumns(path string, rows [][]string, names ...string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s has no header row", path))
	}
	cols := make(map[string]int, len(names))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is missing the %q column", path, name))
		}
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// splitRanges breaks an availability cell into range fragments. Forms use
// commas, the roster sheets use semicolons; both appear in the wild.
func splitRanges(raw string) []string {
	var fragments []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' }) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fragments = append(fragments, trimmed)
		}
	}
	return fragments
}
