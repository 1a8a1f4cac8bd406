package report

import (
	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/models"
)

func lineFor(e models.TimeEntry, reportDate string) models.ReportLine {
	return models.ReportLine{
		ReportDate:       reportDate,
		StartTime:        e.StartTime.Format(constants.ClockLayout),
		EndTime:          e.EndTime.Format(constants.ClockLayout),
		Location:         constants.DefaultLocation,
		OriginalLocation: constants.DefaultLocation,
		Notes:            "",
	}
}

// BuildPayload converts completed entries into a submission grouped by
// project code. Active entries are skipped: an entry without an end time is
// never submitted.
func BuildPayload(entries []models.TimeEntry, reportDate, identity string) models.SubmissionPayload {
	projectReports := make(map[string][]models.ReportLine)
	for _, e := range entries {
		if !e.Completed() {
			continue
		}
		projectReports[e.ProjectCode] = append(projectReports[e.ProjectCode], lineFor(e, reportDate))
	}
	return models.SubmissionPayload{
		MinStartDate:   reportDate,
		MaxEndDate:     reportDate,
		Identity:       identity,
		ProjectReports: projectReports,
	}
}

// ManualLine is the form input for a one-line submission.
type ManualLine struct {
	ProjectCode string
	ReportDate  string
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Location    int
	Notes       string
}

// BuildManualPayload wraps a single hand-entered line into a submission.
func BuildManualPayload(line ManualLine, identity string) models.SubmissionPayload {
	loc := line.Location
	if loc == 0 {
		loc = constants.DefaultLocation
	}
	return models.SubmissionPayload{
		MinStartDate: line.ReportDate,
		MaxEndDate:   line.ReportDate,
		Identity:     identity,
		ProjectReports: map[string][]models.ReportLine{
			line.ProjectCode: {{
				ReportDate:       line.ReportDate,
				StartTime:        line.StartTime,
				EndTime:          line.EndTime,
				Location:         loc,
				OriginalLocation: loc,
				Notes:            line.Notes,
			}},
		},
	}
}

// InvalidEntry pairs a rejected line with the local entry it came from, when
// one can be identified, so the rejection reason can be shown next to it.
type InvalidEntry struct {
	EntryID string // empty when no local entry matches the line
	Line    models.LineResult
}

// Outcome is the local follow-up to a submission result: which entries to
// clear from storage and which rejected lines to surface for correction.
type Outcome struct {
	ClearIDs map[string]struct{}
	Invalid  []InvalidEntry
}

func lineKey(project, start, end string) string {
	return project + "|" + start + "|" + end
}

// Interpret maps the service's verdict back onto local entries. Entries whose
// lines were accepted are scheduled for removal; entries behind invalid lines
// stay in local storage, annotated with the service's reason. Lines are
// matched to entries by project code and clock times, consuming one entry per
// line when the same range was submitted more than once.
func Interpret(entries []models.TimeEntry, result models.SendResult) Outcome {
	byKey := make(map[string][]string)
	for _, e := range entries {
		if !e.Completed() {
			continue
		}
		k := lineKey(e.ProjectCode, e.StartTime.Format(constants.ClockLayout), e.EndTime.Format(constants.ClockLayout))
		byKey[k] = append(byKey[k], e.ID)
	}

	take := func(l models.LineResult) string {
		k := lineKey(l.Project, l.StartTime, l.EndTime)
		ids := byKey[k]
		if len(ids) == 0 {
			return ""
		}
		byKey[k] = ids[1:]
		return ids[0]
	}

	out := Outcome{ClearIDs: make(map[string]struct{})}
	for _, l := range result.ValidLines {
		if id := take(l); id != "" {
			out.ClearIDs[id] = struct{}{}
		}
	}
	for _, l := range result.InvalidLines {
		out.Invalid = append(out.Invalid, InvalidEntry{EntryID: take(l), Line: l})
	}
	return out
}
