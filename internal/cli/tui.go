package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dayhive/dayhive/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	model := tui.NewModel(appCtx.Store, appCtx.Tracker, appCtx.Cache, identity)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
