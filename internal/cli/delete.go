package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

type DeleteCmd struct {
	ID  string `arg:"" help:"Entry id (or unique prefix) to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}

	entries, err := appCtx.Store.Load(ctx)
	if err != nil {
		return err
	}
	entry, err := resolveEntry(entries, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete entry for %s on %s?", entry.ProjectName, entry.Date)).
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

	if _, err := appCtx.Store.Remove(ctx, entry.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", entry.ID[:8])
	return nil
}
