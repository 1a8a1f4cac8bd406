// Package entrystore provides durable, identity-scoped CRUD over the list of
// time entries. The persisted unit is the whole collection: every mutation is
// a read-modify-write of one storage key, serialized by an internal lock so
// overlapping mutations cannot lose updates.
package entrystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/models"
	"github.com/dayhive/dayhive/internal/storage"
)

var (
	// ErrDuplicateID indicates an append with an id already in the store.
	// This is a caller bug: entry ids are generated, never reused.
	ErrDuplicateID = errors.New("duplicate entry id")

	// ErrNoIdentity indicates an operation before SetIdentity was called.
	ErrNoIdentity = errors.New("no identity set")
)

// Store owns the TimeEntry collection for one identity at a time. Switching
// identity swaps the effective dataset; nothing is migrated or merged.
type Store struct {
	kv  storage.KV
	log zerolog.Logger

	mu sync.Mutex
	ns string
}

func New(kv storage.KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log.With().Str("component", "entrystore").Logger()}
}

// SetIdentity switches the namespace all subsequent operations read and
// write. Callers must not switch while a mutation for the previous identity
// is in flight.
func (s *Store) SetIdentity(ns string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ns = ns
}

func (s *Store) key() (string, error) {
	if s.ns == "" {
		return "", ErrNoIdentity
	}
	return constants.EntriesKeyPrefix + s.ns, nil
}

// read loads the collection for the current namespace. Callers must hold mu.
func (s *Store) read(ctx context.Context) ([]models.TimeEntry, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if raw == nil {
		return []models.TimeEntry{}, nil
	}
	var entries []models.TimeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse entries: %v", storage.ErrRead, err)
	}
	return entries, nil
}

// write persists the collection for the current namespace. Callers must hold mu.
func (s *Store) write(ctx context.Context, entries []models.TimeEntry) error {
	key, err := s.key()
	if err != nil {
		return err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: serialize entries: %v", storage.ErrWrite, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

// Load returns the full collection for the current identity, empty if nothing
// has been persisted yet.
func (s *Store) Load(ctx context.Context) ([]models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// Append persists a new entry and returns the updated collection.
func (s *Store) Append(ctx context.Context, entry models.TimeEntry) ([]models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == entry.ID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}
	}
	entries = append(entries, entry)
	if err := s.write(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update merges the patch into the entry matching id and returns the updated
// collection. An absent id is a no-op: the entry may have been deleted while
// an edit was pending, and the edit loses.
func (s *Store) Update(ctx context.Context, id string, patch models.EntryPatch) ([]models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for i, e := range entries {
		if e.ID == id {
			entries[i] = patch.Apply(e)
			found = true
			break
		}
	}
	if !found {
		s.log.Debug().Str("id", id).Msg("update of absent entry ignored")
		return entries, nil
	}
	if err := s.write(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove deletes the entry matching id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) ([]models.TimeEntry, error) {
	return s.RemoveMany(ctx, map[string]struct{}{id: {}})
}

// RemoveMany deletes every entry whose id is in ids. Used to clear entries
// after a successful submission.
func (s *Store) RemoveMany(ctx context.Context, ids map[string]struct{}) ([]models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	remaining := make([]models.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if _, drop := ids[e.ID]; !drop {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(entries) {
		return entries, nil
	}
	if err := s.write(ctx, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

// Active returns the single in-progress entry in the collection, or nil.
func Active(entries []models.TimeEntry) *models.TimeEntry {
	for i := range entries {
		if !entries[i].Completed() {
			return &entries[i]
		}
	}
	return nil
}

// Completed returns the completed entries in insertion order.
func Completed(entries []models.TimeEntry) []models.TimeEntry {
	out := make([]models.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Completed() {
			out = append(out, e)
		}
	}
	return out
}
