package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/scheduler"
	appErrors "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/errors"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/export"
)

// Report file names inside a run directory.
const (
	MainScheduleFile   = "main_schedule.csv"
	ApplicantViewFile  = "applicant_schedules.csv"
	RecruiterViewFile  = "recruiter_schedules.csv"
	UnscheduledFile    = "unscheduled_applicants.csv"
	SummaryFile        = "summary_report.txt"
	BlockBreakdownFile = "block_breakdown.txt"
	SummaryPDFFile     = "summary_report.pdf"
)

// Run bundles everything one scheduling run produced, ready to render.
type Run struct {
	Result      *scheduler.Result
	Applicants  []*models.Applicant
	Recruiters  []*models.Recruiter
	Rooms       []*models.Room
	Warnings    []models.DataQualityWarning
	GeneratedAt time.Time
}

// Writer renders a run into its report files.
type Writer struct {
	log        *zap.Logger
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	pdfSummary bool
}

// NewWriter builds a report writer. With pdfSummary set, the textual
// summary is also rendered as a PDF.
func NewWriter(log *zap.Logger, pdfSummary bool) *Writer {
	return &Writer{
		log:        log,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		pdfSummary: pdfSummary,
	}
}

// Write renders every report into a timestamped directory under
// resultsDir and returns that directory.
func (w *Writer) Write(resultsDir string, run *Run) (string, error) {
	dir := filepath.Join(resultsDir, "run_"+run.GeneratedAt.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			fmt.Sprintf("cannot create results directory %s", dir))
	}

	names := newNameIndex(run)

	files := map[string][]byte{}
	var err error
	if files[MainScheduleFile], err = w.csv.Render(mainSchedule(run, names)); err != nil {
		return "", wrapRender(MainScheduleFile, err)
	}
	if files[ApplicantViewFile], err = w.csv.Render(applicantView(run, names)); err != nil {
		return "", wrapRender(ApplicantViewFile, err)
	}
	if files[RecruiterViewFile], err = w.csv.Render(recruiterView(run, names)); err != nil {
		return "", wrapRender(RecruiterViewFile, err)
	}
	if files[UnscheduledFile], err = w.csv.Render(unscheduledView(run, names)); err != nil {
		return "", wrapRender(UnscheduledFile, err)
	}
	files[SummaryFile] = []byte(summaryText(run))
	files[BlockBreakdownFile] = []byte(blockBreakdown(run, names))
	if w.pdfSummary {
		data, lines := summaryPDF(run)
		if files[SummaryPDFFile], err = w.pdf.Render(data, "Interview Schedule Summary", lines); err != nil {
			return "", wrapRender(SummaryPDFFile, err)
		}
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				fmt.Sprintf("cannot write report %s", name))
		}
	}
	w.log.Info("reports written", zap.String("dir", dir), zap.Int("files", len(files)))
	return dir, nil
}

func wrapRender(name string, err error) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
		fmt.Sprintf("cannot render report %s", name))
}

// nameIndex resolves entity IDs to display names for the reports.
type nameIndex struct {
	applicants map[string]*models.Applicant
	recruiters map[string]*models.Recruiter
}

func newNameIndex(run *Run) *nameIndex {
	ix := &nameIndex{
		applicants: make(map[string]*models.Applicant, len(run.Applicants)),
		recruiters: make(map[string]*models.Recruiter, len(run.Recruiters)),
	}
	for _, a := range run.Applicants {
		ix.applicants[a.Email] = a
	}
	for _, r := range run.Recruiters {
		ix.recruiters[r.ID] = r
	}
	return ix
}

func (ix *nameIndex) applicantName(email string) string {
	if a, ok := ix.applicants[email]; ok && a.Name != "" {
		return a.Name
	}
	return email
}

func (ix *nameIndex) recruiterName(id string) string {
	if r, ok := ix.recruiters[id]; ok && r.Name != "" {
		return r.Name
	}
	return id
}

func (ix *nameIndex) applicantNames(emails []string) string {
	names := make([]string, len(emails))
	for i, e := range emails {
		names[i] = ix.applicantName(e)
	}
	return strings.Join(names, "; ")
}

func (ix *nameIndex) recruiterNames(ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = ix.recruiterName(id)
	}
	return strings.Join(names, "; ")
}

func mainSchedule(run *Run, names *nameIndex) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Time", "Type", "Room", "Recruiters", "Applicants"},
	}
	for _, iv := range run.Result.Winner.Interviews {
		data.Rows = append(data.Rows, []string{
			iv.Slot.String(),
			string(iv.Type),
			iv.RoomID,
			names.recruiterNames(iv.Recruiters),
			names.applicantNames(iv.Applicants),
		})
	}
	return data
}

func applicantView(run *Run, names *nameIndex) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Applicant", "Email", "Type", "Time", "Room", "Recruiters"},
	}
	for _, a := range run.Applicants {
		for _, kind := range []models.InterviewType{models.InterviewGroup, models.InterviewIndividual} {
			iv, ok := interviewFor(run.Result.Winner, a.Email, kind)
			if !ok {
				continue
			}
			data.Rows = append(data.Rows, []string{
				names.applicantName(a.Email),
				a.Email,
				string(kind),
				iv.Slot.String(),
				iv.RoomID,
				names.recruiterNames(iv.Recruiters),
			})
		}
	}
	return data
}

func recruiterView(run *Run, names *nameIndex) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Recruiter", "Team", "Type", "Time", "Room", "Applicants"},
	}
	for _, r := range run.Recruiters {
		for _, iv := range run.Result.Winner.Interviews {
			if !iv.HasRecruiter(r.ID) {
				continue
			}
			data.Rows = append(data.Rows, []string{
				names.recruiterName(r.ID),
				string(r.Team),
				string(iv.Type),
				iv.Slot.String(),
				iv.RoomID,
				names.applicantNames(iv.Applicants),
			})
		}
	}
	return data
}

func unscheduledView(run *Run, names *nameIndex) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Email", "Applicant", "Missing"},
	}
	missing := make(map[string][]string)
	for _, email := range run.Result.Winner.UnscheduledGroup {
		missing[email] = append(missing[email], string(models.InterviewGroup))
	}
	for _, email := range run.Result.Winner.UnscheduledIndividual {
		missing[email] = append(missing[email], string(models.InterviewIndividual))
	}
	emails := make([]string, 0, len(missing))
	for email := range missing {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		data.Rows = append(data.Rows, []string{
			email,
			names.applicantName(email),
			strings.Join(missing[email], "; "),
		})
	}
	return data
}

func summaryLines(run *Run) []string {
	winner := run.Result.Winner
	total := len(run.Applicants)
	groups, individuals := 0, 0
	for _, iv := range winner.Interviews {
		if iv.Type == models.InterviewGroup {
			groups++
		} else {
			individuals++
		}
	}

	lines := []string{
		fmt.Sprintf("Generated: %s", run.GeneratedAt.Format(time.RFC1123)),
		fmt.Sprintf("Winning strategy: %s", winner.Strategy),
		fmt.Sprintf("Elapsed: %s", run.Result.Elapsed.Round(time.Millisecond)),
		"",
		fmt.Sprintf("Applicants: %d", total),
		fmt.Sprintf("Fully scheduled: %d", winner.Score.FullyScheduled),
		fmt.Sprintf("Within spacing window: %d", winner.Score.WellSpaced),
		fmt.Sprintf("Quality points: %.1f", winner.Score.Quality),
		fmt.Sprintf("Group interviews: %d", groups),
		fmt.Sprintf("Individual interviews: %d", individuals),
		fmt.Sprintf("Missing a group interview: %d", len(winner.UnscheduledGroup)),
		fmt.Sprintf("Missing an individual interview: %d", len(winner.UnscheduledIndividual)),
		fmt.Sprintf("Data quality warnings: %d", len(run.Warnings)),
		"",
		"Strategy scores:",
	}
	for _, c := range run.Result.Candidates {
		lines = append(lines, fmt.Sprintf("  %-12s fully=%d spaced=%d quality=%.1f",
			c.Strategy, c.Score.FullyScheduled, c.Score.WellSpaced, c.Score.Quality))
	}
	return lines
}

func summaryText(run *Run) string {
	lines := append([]string{"INTERVIEW SCHEDULE SUMMARY", strings.Repeat("=", 26), ""}, summaryLines(run)...)
	if len(run.Warnings) > 0 {
		lines = append(lines, "", "Data quality warnings:")
		for _, w := range run.Warnings {
			lines = append(lines, fmt.Sprintf("  %s %s: %s (%q)", w.Entity, w.Field, w.Reason, w.Raw))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func summaryPDF(run *Run) (export.Dataset, []string) {
	data := export.Dataset{
		Headers: []string{"Strategy", "Fully Scheduled", "Well Spaced", "Quality"},
	}
	for _, c := range run.Result.Candidates {
		data.Rows = append(data.Rows, []string{
			c.Strategy,
			fmt.Sprintf("%d", c.Score.FullyScheduled),
			fmt.Sprintf("%d", c.Score.WellSpaced),
			fmt.Sprintf("%.1f", c.Score.Quality),
		})
	}
	return data, summaryLines(run)
}

// blockBreakdown renders a per-time-block view of the calendar: every
// distinct start instant with the interviews running in it.
func blockBreakdown(run *Run, names *nameIndex) string {
	winner := run.Result.Winner
	byStart := make(map[time.Time][]models.Interview)
	var starts []time.Time
	for _, iv := range winner.Interviews {
		if _, ok := byStart[iv.Slot.Start]; !ok {
			starts = append(starts, iv.Slot.Start)
		}
		byStart[iv.Slot.Start] = append(byStart[iv.Slot.Start], iv)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	var b strings.Builder
	b.WriteString("BLOCK BREAKDOWN\n")
	b.WriteString(strings.Repeat("=", 15) + "\n")
	for _, start := range starts {
		fmt.Fprintf(&b, "\n%s\n", start.Format("Mon Jan 2 2006 03:04 PM"))
		for _, iv := range byStart[start] {
			fmt.Fprintf(&b, "  [%s] %s | %s | %s\n",
				iv.Type, iv.RoomID,
				names.recruiterNames(iv.Recruiters),
				names.applicantNames(iv.Applicants))
		}
	}
	if len(starts) == 0 {
		b.WriteString("\nNo interviews scheduled.\n")
	}
	return b.String()
}

func interviewFor(s *models.Schedule, email string, kind models.InterviewType) (models.Interview, bool) {
	if kind == models.InterviewGroup {
		return s.GroupFor(email)
	}
	return s.IndividualFor(email)
}
