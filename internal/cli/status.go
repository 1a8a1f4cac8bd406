package cli

import (
	"context"
	"fmt"

	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/report"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}

	entries, err := appCtx.Store.Load(ctx)
	if err != nil {
		return err
	}

	if active := entrystore.Active(entries); active != nil {
		fmt.Printf("Tracking %s (%s) since %s — %s\n",
			active.ProjectName, active.ProjectCode,
			active.StartTime.Format("15:04"),
			formatElapsed(appCtx.Tracker.Elapsed(*active)))
	} else {
		fmt.Println("Not tracking")
	}

	s := report.Summarize(entries)
	fmt.Printf("%d completed entr%s pending submission (%.1fh total)\n",
		s.Count, pluralY(s.Count), s.TotalHours)
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
