package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupStores(t *testing.T) map[string]KV {
	t.Helper()
	tempDir := t.TempDir()

	sqliteStore, err := NewSQLiteKV(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]KV{
		"file":   NewFileKV(filepath.Join(tempDir, "test.json")),
		"sqlite": sqliteStore,
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set(ctx, "entries:u1", []byte(`["a"]`)); err != nil {
				t.Fatalf("set failed: %v", err)
			}

			got, err := store.Get(ctx, "entries:u1")
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if string(got) != `["a"]` {
				t.Errorf("expected %q, got %q", `["a"]`, got)
			}
		})
	}
}

func TestKVAbsentKeyReturnsNil(t *testing.T) {
	ctx := context.Background()

	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Get(ctx, "missing")
			if err != nil {
				t.Fatalf("get of absent key failed: %v", err)
			}
			if got != nil {
				t.Errorf("expected nil for absent key, got %q", got)
			}
		})
	}
}

func TestKVRemove(t *testing.T) {
	ctx := context.Background()

	for name, store := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set(ctx, "a", []byte("1")); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := store.Set(ctx, "b", []byte("2")); err != nil {
				t.Fatalf("set failed: %v", err)
			}

			if err := store.Remove(ctx, "a", "b", "never-existed"); err != nil {
				t.Fatalf("remove failed: %v", err)
			}

			for _, key := range []string{"a", "b"} {
				got, err := store.Get(ctx, key)
				if err != nil {
					t.Fatalf("get failed: %v", err)
				}
				if got != nil {
					t.Errorf("expected %q removed, got %q", key, got)
				}
			}
		})
	}
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first := NewFileKV(path)
	if err := first.Set(ctx, "projects:u1", []byte(`[]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	second := NewFileKV(path)
	got, err := second.Get(ctx, "projects:u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("expected value to survive reopen, got %q", got)
	}
}

func TestFileKVCorruptFileIsReadError(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "store.json")

	store := NewFileKV(path)
	if err := store.Set(ctx, "k", []byte("1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to corrupt file: %v", err)
	}

	_, err := store.Get(ctx, "k")
	if !errors.Is(err, ErrRead) {
		t.Errorf("expected ErrRead for corrupt file, got %v", err)
	}
}
