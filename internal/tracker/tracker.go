// Package tracker implements the start/stop state machine over the entry
// store's active-entry projection. At most one entry is active at any time;
// switching projects closes the running entry before opening the next one.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/models"
)

// ErrTracking indicates a toggle failed partway. The store is still in a
// consistent state (never two active entries), but callers must reload before
// issuing another toggle.
var ErrTracking = errors.New("tracking toggle failed")

// Action describes what a toggle did.
type Action int

const (
	ActionStarted Action = iota
	ActionStopped
	ActionSwitched
)

func (a Action) String() string {
	switch a {
	case ActionStarted:
		return "started"
	case ActionStopped:
		return "stopped"
	case ActionSwitched:
		return "switched"
	default:
		return "unknown"
	}
}

// Result is the outcome of a toggle: the updated collection, the entry now
// active (nil after a stop), and what happened.
type Result struct {
	Entries []models.TimeEntry
	Active  *models.TimeEntry
	Action  Action
}

type Tracker struct {
	store *entrystore.Store
	log   zerolog.Logger

	// mu serializes whole toggles. Each toggle is a load followed by one or
	// two mutations; interleaving two of them could append twice.
	mu sync.Mutex

	now   func() time.Time // test hook
	newID func() string    // test hook
}

func New(store *entrystore.Store, log zerolog.Logger) *Tracker {
	return &Tracker{
		store: store,
		log:   log.With().Str("component", "tracker").Logger(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (t *Tracker) newEntry(project models.Project, now time.Time) models.TimeEntry {
	return models.TimeEntry{
		ID:          t.newID(),
		ProjectCode: project.Code,
		ProjectName: project.ShortDescription,
		ClientName:  project.AccountName,
		StartTime:   now,
		EndTime:     nil,
		Date:        now.Format(constants.DateLayout),
	}
}

// Toggle starts tracking the given project, stops it if it is already being
// tracked, or switches to it if another project is running. The switch closes
// the running entry before the new one is appended, so the store is never
// observed with two active entries.
func (t *Tracker) Toggle(ctx context.Context, project models.Project) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries, err := t.store.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrTracking, err)
	}

	now := t.now()
	active := entrystore.Active(entries)

	// Stop: the tracked project was toggled again.
	if active != nil && active.ProjectCode == project.Code {
		updated, err := t.store.Update(ctx, active.ID, models.EntryPatch{EndTime: &now})
		if err != nil {
			return Result{}, fmt.Errorf("%w: close entry: %v", ErrTracking, err)
		}
		t.log.Debug().Str("project", project.Code).Msg("tracking stopped")
		return Result{Entries: updated, Action: ActionStopped}, nil
	}

	action := ActionStarted

	// Switch: close the running entry first. Once the close is committed a
	// failure on the open below leaves the store idle, not inconsistent.
	if active != nil {
		if _, err := t.store.Update(ctx, active.ID, models.EntryPatch{EndTime: &now}); err != nil {
			return Result{}, fmt.Errorf("%w: close entry: %v", ErrTracking, err)
		}
		action = ActionSwitched
	}

	entry := t.newEntry(project, now)
	updated, err := t.store.Append(ctx, entry)
	if err != nil {
		return Result{}, fmt.Errorf("%w: open entry: %v", ErrTracking, err)
	}
	t.log.Debug().Str("project", project.Code).Str("id", entry.ID).Msg("tracking started")
	return Result{Entries: updated, Active: &entry, Action: action}, nil
}

// Elapsed returns whole seconds since the entry started. It is derived from
// wall-clock subtraction on every call rather than accumulated, so it
// self-corrects after a suspension.
func (t *Tracker) Elapsed(entry models.TimeEntry) int {
	return int(t.now().Sub(entry.StartTime) / time.Second)
}
