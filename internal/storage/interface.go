package storage

import (
	"context"
	"errors"
)

// Substrate failures. Callers match with errors.Is; the concrete cause is
// wrapped alongside.
var (
	ErrRead  = errors.New("storage read failed")
	ErrWrite = errors.New("storage write failed")
)

// KV is a string-keyed blob store with no transactional guarantees across
// keys. Get returns (nil, nil) for an absent key. Remove of an absent key is
// not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}
