package tracker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/models"
	"github.com/dayhive/dayhive/internal/storage"
)

var (
	projectA = models.Project{Code: "PRJ-001", ShortDescription: "Website Redesign", AccountName: "Acme Corp"}
	projectB = models.Project{Code: "PRJ-002", ShortDescription: "Mobile App", AccountName: "TechStart Ltd"}
)

func setupTracker(t *testing.T) (*Tracker, *entrystore.Store) {
	t.Helper()
	kv := storage.NewFileKV(filepath.Join(t.TempDir(), "store.json"))
	store := entrystore.New(kv, zerolog.Nop())
	store.SetIdentity("u1")
	return New(store, zerolog.Nop()), store
}

func countActive(entries []models.TimeEntry) int {
	n := 0
	for _, e := range entries {
		if !e.Completed() {
			n++
		}
	}
	return n
}

func TestToggleStartsTracking(t *testing.T) {
	tr, _ := setupTracker(t)
	ctx := context.Background()

	res, err := tr.Toggle(ctx, projectA)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if res.Action != ActionStarted {
		t.Errorf("expected started, got %v", res.Action)
	}
	if res.Active == nil || res.Active.ProjectCode != projectA.Code {
		t.Fatalf("expected active entry for %s, got %+v", projectA.Code, res.Active)
	}
	if res.Active.Date != res.Active.StartTime.Format("2006-01-02") {
		t.Errorf("expected date derived from start time, got %q", res.Active.Date)
	}
}

// Toggling the same project twice yields exactly one completed entry and no
// active one.
func TestToggleTwiceIsStartStop(t *testing.T) {
	tr, store := setupTracker(t)
	ctx := context.Background()

	if _, err := tr.Toggle(ctx, projectA); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	res, err := tr.Toggle(ctx, projectA)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if res.Action != ActionStopped {
		t.Errorf("expected stopped, got %v", res.Action)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if countActive(entries) != 0 {
		t.Errorf("expected no active entries, got %d", countActive(entries))
	}
	if !entries[0].StartTime.Before(*entries[0].EndTime) &&
		!entries[0].StartTime.Equal(*entries[0].EndTime) {
		t.Errorf("expected start <= end, got start=%v end=%v", entries[0].StartTime, entries[0].EndTime)
	}
}

// Switching projects closes A and opens B; never two active entries.
func TestToggleSwitchesProjects(t *testing.T) {
	tr, store := setupTracker(t)
	ctx := context.Background()

	if _, err := tr.Toggle(ctx, projectA); err != nil {
		t.Fatalf("toggle A failed: %v", err)
	}
	res, err := tr.Toggle(ctx, projectB)
	if err != nil {
		t.Fatalf("toggle B failed: %v", err)
	}
	if res.Action != ActionSwitched {
		t.Errorf("expected switched, got %v", res.Action)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if countActive(entries) != 1 {
		t.Errorf("expected exactly 1 active entry, got %d", countActive(entries))
	}
	active := entrystore.Active(entries)
	if active.ProjectCode != projectB.Code {
		t.Errorf("expected %s active, got %s", projectB.Code, active.ProjectCode)
	}
	for _, e := range entries {
		if e.ProjectCode == projectA.Code && !e.Completed() {
			t.Errorf("expected entry for %s to be closed", projectA.Code)
		}
	}
}

func TestElapsedDerivation(t *testing.T) {
	tr, _ := setupTracker(t)
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return start.Add(30*time.Minute + 500*time.Millisecond) }

	entry := models.TimeEntry{StartTime: start}
	if got := tr.Elapsed(entry); got != 1800 {
		t.Errorf("expected 1800 elapsed seconds, got %d", got)
	}
}

func TestTrackedDuration(t *testing.T) {
	tr, store := setupTracker(t)
	ctx := context.Background()
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	tr.now = func() time.Time { return start }
	if _, err := tr.Toggle(ctx, projectA); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	tr.now = func() time.Time { return start.Add(30 * time.Minute) }
	if _, err := tr.Toggle(ctx, projectA); err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if d := entries[0].Duration(); d != 30*time.Minute {
		t.Errorf("expected 30m tracked, got %v", d)
	}
}

// flakyKV fails every Set after the first n succeed.
type flakyKV struct {
	storage.KV
	allowed int32
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if atomic.AddInt32(&f.allowed, -1) < 0 {
		return fmt.Errorf("%w: disk full", storage.ErrWrite)
	}
	return f.KV.Set(ctx, key, value)
}

// When the open step of a switch fails, the close step has already been
// committed: the store ends up idle with the prior entry closed, never with
// two active entries.
func TestSwitchFailureLeavesStoreConsistent(t *testing.T) {
	kv := &flakyKV{KV: storage.NewFileKV(filepath.Join(t.TempDir(), "store.json"))}
	store := entrystore.New(kv, zerolog.Nop())
	store.SetIdentity("u1")
	tr := New(store, zerolog.Nop())
	ctx := context.Background()

	kv.allowed = 2 // start A, close A; the open of B fails
	if _, err := tr.Toggle(ctx, projectA); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, err := tr.Toggle(ctx, projectB)
	if !errors.Is(err, ErrTracking) {
		t.Fatalf("expected ErrTracking, got %v", err)
	}

	atomic.StoreInt32(&kv.allowed, 100)
	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if countActive(entries) != 0 {
		t.Errorf("expected idle store after failed switch, got %d active", countActive(entries))
	}
}

// Two unsynchronized toggles for the same project must not both append: the
// tracker serializes them, so they resolve to a start followed by a stop.
func TestConcurrentTogglesKeepInvariant(t *testing.T) {
	tr, store := setupTracker(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tr.Toggle(ctx, projectA); err != nil {
				t.Errorf("toggle failed: %v", err)
			}
		}()
	}
	wg.Wait()

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(entries))
	}
	if n := countActive(entries); n != 0 {
		t.Errorf("invariant violated: %d active entries", n)
	}
}

func TestElapsedTickerStops(t *testing.T) {
	var ticks int32
	ticker := StartElapsedTicker(time.Now(), 10*time.Millisecond, func(int) {
		atomic.AddInt32(&ticks, 1)
	})

	time.Sleep(50 * time.Millisecond)
	ticker.Stop()
	after := atomic.LoadInt32(&ticks)
	if after < 2 {
		t.Fatalf("expected ticker to fire, got %d ticks", after)
	}

	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&ticks); got != after {
		t.Errorf("ticker fired after Stop: %d -> %d", after, got)
	}

	ticker.Stop() // idempotent
}
