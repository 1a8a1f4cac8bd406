package cli

import (
	"context"
	"fmt"

	"github.com/dayhive/dayhive/internal/report"
)

// SubmitCmd sends one hand-entered report line without touching the local
// entry store.
type SubmitCmd struct {
	Project  string `arg:"" help:"Project code to report against."`
	Start    string `help:"Start time (HH:MM)." default:"09:00"`
	End      string `help:"End time (HH:MM)." default:"17:00"`
	Date     string `help:"Report date (YYYY-MM-DD or 'today')." default:"today"`
	Notes    string `help:"Free-text notes for the line."`
	Location int    `help:"Site code for the line." default:"1"`
}

func (c *SubmitCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	reportDate, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}
	if err := parseClockArg(c.Start); err != nil {
		return err
	}
	if err := parseClockArg(c.End); err != nil {
		return err
	}
	if c.Start >= c.End {
		return fmt.Errorf("start time %s must be before end time %s", c.Start, c.End)
	}

	projects, err := appCtx.Cache.Get(ctx, identity)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	project, err := findProject(projects, c.Project)
	if err != nil {
		return err
	}

	payload := report.BuildManualPayload(report.ManualLine{
		ProjectCode: project.Code,
		ReportDate:  reportDate,
		StartTime:   c.Start,
		EndTime:     c.End,
		Location:    c.Location,
		Notes:       c.Notes,
	}, identity)

	result, err := appCtx.API.SendReport(ctx, payload)
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	if len(result.InvalidLines) > 0 {
		for _, line := range result.InvalidLines {
			fmt.Printf("Rejected %s %s–%s: %s\n", line.Project, line.StartTime, line.EndTime, line.Reason)
		}
		return fmt.Errorf("submission rejected")
	}
	fmt.Printf("Reported %s %s–%s on %s\n", project.Code, c.Start, c.End, reportDate)
	return nil
}
