// Package tui is the interactive timer dashboard: a project list with a
// running clock for the active entry. It is a thin view over the tracking
// engine; all state changes go through the tracker and entry store.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/models"
	"github.com/dayhive/dayhive/internal/projectcache"
	"github.com/dayhive/dayhive/internal/tracker"
)

type Model struct {
	store    *entrystore.Store
	tracker  *tracker.Tracker
	cache    *projectcache.Cache
	identity string

	keys KeyMap
	help help.Model

	projects []models.Project
	entries  []models.TimeEntry
	cursor   int
	elapsed  int
	errMsg   string
	quitting bool
}

func NewModel(store *entrystore.Store, tr *tracker.Tracker, cache *projectcache.Cache, identity string) Model {
	return Model{
		store:    store,
		tracker:  tr,
		cache:    cache,
		identity: identity,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

type projectsMsg struct {
	projects []models.Project
	err      error
}

type entriesMsg struct {
	entries []models.TimeEntry
	err     error
}

type tickMsg time.Time

func (m Model) loadProjects(refresh bool) tea.Cmd {
	return func() tea.Msg {
		get := m.cache.Get
		if refresh {
			get = m.cache.Refresh
		}
		projects, err := get(context.Background(), m.identity)
		return projectsMsg{projects: projects, err: err}
	}
}

func (m Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.store.Load(context.Background())
		return entriesMsg{entries: entries, err: err}
	}
}

func (m Model) toggle(project models.Project) tea.Cmd {
	return func() tea.Msg {
		res, err := m.tracker.Toggle(context.Background(), project)
		return entriesMsg{entries: res.Entries, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) active() *models.TimeEntry {
	return entrystore.Active(m.entries)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProjects(false), m.loadEntries(), tick())
}
