package cli

import (
	"context"
	"fmt"

	"github.com/dayhive/dayhive/internal/models"
)

type EditCmd struct {
	ID    string `arg:"" help:"Entry id (or unique prefix) to edit."`
	Start string `help:"New start time (HH:MM)."`
	End   string `help:"New end time (HH:MM)."`
	Date  string `help:"New date (YYYY-MM-DD); times stay on this date."`
}

func (c *EditCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}
	if c.Start == "" && c.End == "" && c.Date == "" {
		return fmt.Errorf("nothing to change, pass --start, --end or --date")
	}

	entries, err := appCtx.Store.Load(ctx)
	if err != nil {
		return err
	}
	entry, err := resolveEntry(entries, c.ID)
	if err != nil {
		return err
	}

	date := entry.Date
	if c.Date != "" {
		if date, err = parseDateArg(c.Date); err != nil {
			return err
		}
	}

	patch := models.EntryPatch{}
	if c.Date != "" {
		patch.Date = &date
	}

	start := entry.StartTime
	if c.Start != "" {
		if start, err = combineDateClock(date, c.Start); err != nil {
			return err
		}
		patch.StartTime = &start
	}
	if c.End != "" {
		end, err := combineDateClock(date, c.End)
		if err != nil {
			return err
		}
		if !start.Before(end) {
			return fmt.Errorf("start time %s must be before end time %s", start.Format("15:04"), end.Format("15:04"))
		}
		patch.EndTime = &end
	} else if entry.EndTime != nil && patch.StartTime != nil && !start.Before(*entry.EndTime) {
		return fmt.Errorf("start time %s must be before end time %s", start.Format("15:04"), entry.EndTime.Format("15:04"))
	}

	if _, err := appCtx.Store.Update(ctx, entry.ID, patch); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", entry.ID[:8])
	return nil
}

func resolveEntry(entries []models.TimeEntry, idOrPrefix string) (models.TimeEntry, error) {
	var matches []models.TimeEntry
	for _, e := range entries {
		if e.ID == idOrPrefix {
			return e, nil
		}
		if len(idOrPrefix) >= 4 && len(e.ID) >= len(idOrPrefix) && e.ID[:len(idOrPrefix)] == idOrPrefix {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return models.TimeEntry{}, fmt.Errorf("no entry found for %q", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.TimeEntry{}, fmt.Errorf("%q matches %d entries, use a longer prefix", idOrPrefix, len(matches))
	}
}
