package cli

import (
	"context"
	"fmt"

	"github.com/dayhive/dayhive/internal/tracker"
)

type TrackCmd struct {
	Project string `arg:"" help:"Project code to toggle tracking for."`
}

func (c *TrackCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	projects, err := appCtx.Cache.Get(ctx, identity)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	project, err := findProject(projects, c.Project)
	if err != nil {
		return err
	}

	res, err := appCtx.Tracker.Toggle(ctx, project)
	if err != nil {
		return err
	}

	switch res.Action {
	case tracker.ActionStarted:
		fmt.Printf("Tracking %s (%s)\n", project.ShortDescription, project.Code)
	case tracker.ActionStopped:
		stopped := res.Entries[len(res.Entries)-1]
		for _, e := range res.Entries {
			if e.ProjectCode == project.Code && e.Completed() {
				stopped = e
			}
		}
		fmt.Printf("Stopped %s after %s\n", project.ShortDescription, formatDuration(stopped.Duration()))
	case tracker.ActionSwitched:
		fmt.Printf("Switched to %s (%s)\n", project.ShortDescription, project.Code)
	}
	return nil
}
