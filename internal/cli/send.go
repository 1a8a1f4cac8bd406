package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/report"
)

type SendCmd struct {
	Date string `help:"Report date for the submission (YYYY-MM-DD or 'today')." default:"today"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SendCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}
	reportDate, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	entries, err := appCtx.Store.Load(ctx)
	if err != nil {
		return err
	}
	completed := entrystore.Completed(entries)
	if len(completed) == 0 {
		return fmt.Errorf("no completed entries to send")
	}

	s := report.Summarize(completed)
	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Send %d entries (%.1fh) for %s?", s.Count, s.TotalHours, reportDate)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	payload := report.BuildPayload(completed, reportDate, identity)
	result, err := appCtx.API.SendReport(ctx, payload)
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	outcome := report.Interpret(completed, *result)
	if len(outcome.ClearIDs) > 0 {
		if _, err := appCtx.Store.RemoveMany(ctx, outcome.ClearIDs); err != nil {
			return fmt.Errorf("submitted, but failed to clear local entries: %w", err)
		}
	}

	fmt.Printf("Report submitted: %d valid line(s)\n", len(result.ValidLines))
	if len(outcome.Invalid) > 0 {
		fmt.Printf("%d line(s) rejected and kept locally for correction:\n", len(outcome.Invalid))
		for _, inv := range outcome.Invalid {
			ref := inv.Line.Project
			if inv.EntryID != "" {
				ref = inv.EntryID[:8]
			}
			fmt.Printf("  %s (%s %s–%s): %s\n", ref, inv.Line.Project, inv.Line.StartTime, inv.Line.EndTime, inv.Line.Reason)
		}
	}
	return nil
}
