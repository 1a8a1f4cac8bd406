// Package projectcache is a TTL-gated read-through cache over the remote
// project list. Cached data is served immediately even when stale; refreshes
// are an explicit, separate entry point so callers decide when to await one.
package projectcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/models"
	"github.com/dayhive/dayhive/internal/storage"
)

// ErrFetch indicates the remote fetch failed and no cached data was available
// to fall back on.
var ErrFetch = errors.New("project fetch failed")

// Fetcher is the remote source of the project list.
type Fetcher interface {
	FetchProjects(ctx context.Context, identity string) ([]models.Project, error)
}

type Cache struct {
	kv      storage.KV
	fetcher Fetcher
	ttl     time.Duration
	log     zerolog.Logger

	group singleflight.Group
	now   func() time.Time // test hook
}

func New(kv storage.KV, fetcher Fetcher, ttl time.Duration, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = constants.ProjectCacheTTL
	}
	return &Cache{
		kv:      kv,
		fetcher: fetcher,
		ttl:     ttl,
		log:     log.With().Str("component", "projectcache").Logger(),
		now:     time.Now,
	}
}

func projectsKey(identity string) string {
	return constants.ProjectsKeyPrefix + identity
}

func metaKey(identity string) string {
	return constants.ProjectsMetaPrefix + identity
}

// dedupe drops repeated project codes, keeping the first occurrence so the
// service's ordering is preserved.
func dedupe(projects []models.Project) []models.Project {
	seen := make(map[string]struct{}, len(projects))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.Code]; ok {
			continue
		}
		seen[p.Code] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (c *Cache) cached(ctx context.Context, identity string) ([]models.Project, error) {
	raw, err := c.kv.Get(ctx, projectsKey(identity))
	if err != nil {
		return nil, fmt.Errorf("load cached projects: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var projects []models.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("%w: parse cached projects: %v", storage.ErrRead, err)
	}
	return projects, nil
}

// IsStale reports whether the cached list for the identity is older than the
// TTL. A missing meta record counts as stale.
func (c *Cache) IsStale(ctx context.Context, identity string) (bool, error) {
	raw, err := c.kv.Get(ctx, metaKey(identity))
	if err != nil {
		return true, fmt.Errorf("load cache meta: %w", err)
	}
	if raw == nil {
		return true, nil
	}
	var meta models.CacheMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return true, fmt.Errorf("%w: parse cache meta: %v", storage.ErrRead, err)
	}
	age := c.now().UnixMilli() - meta.FetchedAt
	return age > c.ttl.Milliseconds(), nil
}

// Refresh fetches the project list, deduplicates it by code, persists list
// and metadata, and returns the fresh list. Concurrent refreshes for the same
// identity collapse into one in-flight fetch.
func (c *Cache) Refresh(ctx context.Context, identity string) ([]models.Project, error) {
	v, err, _ := c.group.Do(identity, func() (interface{}, error) {
		fetched, err := c.fetcher.FetchProjects(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		projects := dedupe(fetched)

		data, err := json.Marshal(projects)
		if err != nil {
			return nil, fmt.Errorf("%w: serialize projects: %v", storage.ErrWrite, err)
		}
		if err := c.kv.Set(ctx, projectsKey(identity), data); err != nil {
			return nil, fmt.Errorf("save projects: %w", err)
		}

		meta, err := json.Marshal(models.CacheMeta{FetchedAt: c.now().UnixMilli()})
		if err != nil {
			return nil, fmt.Errorf("%w: serialize cache meta: %v", storage.ErrWrite, err)
		}
		if err := c.kv.Set(ctx, metaKey(identity), meta); err != nil {
			return nil, fmt.Errorf("save cache meta: %w", err)
		}

		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Project), nil
}

// Get returns the cached list when it is present and fresh, refreshing
// otherwise. If the refresh fails but a cached (stale) list exists, that list
// is returned instead of the error; with no cache at all the fetch error
// propagates.
func (c *Cache) Get(ctx context.Context, identity string) ([]models.Project, error) {
	cached, err := c.cached(ctx, identity)
	if err != nil {
		return nil, err
	}

	stale, err := c.IsStale(ctx, identity)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 && !stale {
		return cached, nil
	}

	fresh, err := c.Refresh(ctx, identity)
	if err != nil {
		if len(cached) > 0 {
			c.log.Warn().Err(err).Str("identity", identity).Msg("refresh failed, serving stale projects")
			return cached, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Invalidate clears the cached list and its metadata, used on sign-out.
func (c *Cache) Invalidate(ctx context.Context, identity string) error {
	if err := c.kv.Remove(ctx, projectsKey(identity), metaKey(identity)); err != nil {
		return fmt.Errorf("clear project cache: %w", err)
	}
	return nil
}
