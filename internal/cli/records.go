package cli

import (
	"context"
	"fmt"

	"github.com/dayhive/dayhive/internal/report"
)

type RecordsCmd struct{}

func (c *RecordsCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}

	entries, err := appCtx.Store.Load(ctx)
	if err != nil {
		return err
	}

	sections := report.GroupByDate(entries)
	if len(sections) == 0 {
		fmt.Println("No saved records yet. Track time with 'dayhive track <project>'.")
		return nil
	}

	for _, section := range sections {
		fmt.Printf("%s\n", section.Date)
		for _, e := range section.Entries {
			fmt.Printf("  %s  %s\n", e.ID[:8], entryLine(e))
		}
	}

	s := report.Summarize(entries)
	fmt.Printf("\n%d entries, %s total\n", s.Count, formatDuration(report.TotalDuration(entries)))
	return nil
}
