package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case projectsMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.projects = msg.projects
		if m.cursor >= len(m.projects) {
			m.cursor = 0
		}
		return m, nil

	case entriesMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			// The toggle may have failed partway; re-read to show the
			// store's actual state.
			return m, m.loadEntries()
		}
		m.errMsg = ""
		m.entries = msg.entries
		if active := m.active(); active != nil {
			m.elapsed = m.tracker.Elapsed(*active)
		} else {
			m.elapsed = 0
		}
		return m, nil

	case tickMsg:
		// Recompute from the wall clock every second; the display
		// self-corrects after a suspend.
		if active := m.active(); active != nil {
			m.elapsed = m.tracker.Elapsed(*active)
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if len(m.projects) == 0 {
			return m, nil
		}
		return m, m.toggle(m.projects[m.cursor])

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadProjects(true)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}
