package models

import "time"

// TimeEntry is one tracked block of work against a project. An entry with a
// nil EndTime is "active": tracking is still running for it. At most one entry
// per identity may be active at any time.
type TimeEntry struct {
	ID          string     `json:"id"`
	ProjectCode string     `json:"projectCode"`
	ProjectName string     `json:"projectName"`
	ClientName  string     `json:"clientName"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Date        string     `json:"date"` // YYYY-MM-DD, derived from StartTime at creation
}

// Completed reports whether tracking for the entry has finished.
func (e TimeEntry) Completed() bool {
	return e.EndTime != nil
}

// Duration returns the tracked duration, or zero for an active entry.
func (e TimeEntry) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// EntryPatch carries the editable fields of a TimeEntry. Nil fields are left
// unchanged by an update.
type EntryPatch struct {
	ProjectCode *string
	ProjectName *string
	ClientName  *string
	StartTime   *time.Time
	EndTime     *time.Time
	Date        *string
}

// Apply merges the patch into the entry and returns the result.
func (p EntryPatch) Apply(e TimeEntry) TimeEntry {
	if p.ProjectCode != nil {
		e.ProjectCode = *p.ProjectCode
	}
	if p.ProjectName != nil {
		e.ProjectName = *p.ProjectName
	}
	if p.ClientName != nil {
		e.ClientName = *p.ClientName
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = p.EndTime
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e
}
