package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type fileDoc struct {
	Version int                        `json:"version"`
	Keys    map[string]json.RawMessage `json:"keys"`
}

// FileKV keeps all keys in one JSON document on disk. Every Set/Remove
// rewrites the whole file, so a single FileKV must not be shared between
// processes.
type FileKV struct {
	path string
	mu   sync.Mutex
}

func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (s *FileKV) load() (*fileDoc, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileDoc{Version: 1, Keys: make(map[string]json.RawMessage)}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	doc := &fileDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRead, s.path, err)
	}
	if doc.Keys == nil {
		doc.Keys = make(map[string]json.RawMessage)
	}
	return doc, nil
}

func (s *FileKV) save(doc *fileDoc) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrWrite, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serialize: %v", ErrWrite, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (s *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	raw, ok := doc.Keys[key]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (s *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Keys[key] = json.RawMessage(value)
	return s.save(doc)
}

func (s *FileKV) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(doc.Keys, key)
	}
	return s.save(doc)
}

func (s *FileKV) Close() error {
	return nil
}
