// Package report turns raw time entries into grouped display sections,
// summary statistics, and submission payloads. Everything here is pure:
// no I/O, no clocks.
package report

import (
	"sort"
	"time"

	"github.com/dayhive/dayhive/internal/models"
)

// Section is one day's worth of completed entries for the saved-records view.
type Section struct {
	Date    string
	Entries []models.TimeEntry
}

// GroupByDate filters to completed entries and groups them by calendar date,
// most recent day first. Order within a day is the original insertion order.
func GroupByDate(entries []models.TimeEntry) []Section {
	groups := make(map[string][]models.TimeEntry)
	for _, e := range entries {
		if !e.Completed() {
			continue
		}
		groups[e.Date] = append(groups[e.Date], e)
	}

	dates := make([]string, 0, len(groups))
	for date := range groups {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	sections := make([]Section, 0, len(dates))
	for _, date := range dates {
		sections = append(sections, Section{Date: date, Entries: groups[date]})
	}
	return sections
}

// Summary holds the count and total tracked hours of a set of entries.
type Summary struct {
	Count      int
	TotalHours float64
}

// Summarize counts completed entries and sums their durations in hours.
// Active entries contribute nothing.
func Summarize(entries []models.TimeEntry) Summary {
	var s Summary
	for _, e := range entries {
		if !e.Completed() {
			continue
		}
		s.Count++
		s.TotalHours += e.Duration().Hours()
	}
	return s
}

// SummarizeCompare sums server-side pre-aggregated day rows directly.
func SummarizeCompare(rows []models.CompareReport) Summary {
	var s Summary
	for _, r := range rows {
		s.Count++
		s.TotalHours += r.TotalServiceHours
	}
	return s
}

// TotalDuration sums the tracked durations of the completed entries.
func TotalDuration(entries []models.TimeEntry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration()
	}
	return total
}
