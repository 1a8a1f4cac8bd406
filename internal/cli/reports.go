package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/report"
)

type ReportsCmd struct {
	Type string `help:"Report type: compare or daily." enum:"compare,daily" default:"compare"`
	From string `help:"Range start (YYYY-MM-DD); defaults to the start of the current month."`
	To   string `help:"Range end (YYYY-MM-DD); defaults to the end of the current month."`
}

func monthRange(now time.Time) (string, string) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return start.Format(constants.DateLayout), end.Format(constants.DateLayout)
}

func (c *ReportsCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	from, to := monthRange(time.Now())
	if c.From != "" {
		if from, err = parseDateArg(c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if to, err = parseDateArg(c.To); err != nil {
			return err
		}
	}
	if from > to {
		return fmt.Errorf("range start %s is after range end %s", from, to)
	}

	if c.Type == "daily" {
		return c.runDaily(ctx, appCtx, from, to, identity)
	}
	return c.runCompare(ctx, appCtx, from, to, identity)
}

func (c *ReportsCmd) runCompare(ctx context.Context, appCtx *Context, from, to, identity string) error {
	rows, err := appCtx.API.CompareReports(ctx, from, to, identity)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No reports in range")
		return nil
	}

	for _, r := range rows {
		marker := " "
		if !r.Reported() {
			marker = "!"
		}
		fmt.Printf("%s %s %-9s  reported %5.2fh of %5.2fh (diff %+.2f)  %s\n",
			marker, r.WorkDate, r.DayInWeek, r.TotalServiceHours, r.AgreementHours,
			r.TotalServiceHours-r.AgreementHours, r.AgreementName)
	}

	s := report.SummarizeCompare(rows)
	fmt.Printf("\n%d day(s), %.2fh reported; days marked ! are still open\n", s.Count, s.TotalHours)
	return nil
}

func (c *ReportsCmd) runDaily(ctx context.Context, appCtx *Context, from, to, identity string) error {
	rows, err := appCtx.API.DailyReports(ctx, from, to, identity)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No reports in range")
		return nil
	}

	for _, r := range rows {
		fmt.Printf("%s %s–%s  %-25s %-10s %s\n",
			r.StartDate, r.StartTime, r.EndTime, r.ShortDescription, r.Status, r.Location)
	}
	return nil
}
