package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-cmis/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const profileCacheKeyPrefix = "go-cmis::profile::v1"

// CachedProfileStore serves name lookups from a cache and drops the cached
// entry whenever the profile is saved or deleted.
type CachedProfileStore struct {
	base  core.ProfileStore
	cache repositorycache.CacheService
}

func NewCachedProfileStore(
	base core.ProfileStore,
	cacheService repositorycache.CacheService,
) (*CachedProfileStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base profile store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: profile cache service is required")
	}
	return &CachedProfileStore{base: base, cache: cacheService}, nil
}

// ProfileCacheKey returns go-cmis::profile::v1::<name> with the name
// URL-path escaped.
func ProfileCacheKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("sqlstore: profile name is required")
	}
	return profileCacheKeyPrefix + "::" + url.PathEscape(name), nil
}

func (s *CachedProfileStore) Save(ctx context.Context, in core.SaveProfileInput) (core.ConnectionProfile, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.ConnectionProfile{}, fmt.Errorf("sqlstore: cached profile store is not configured")
	}
	saved, err := s.base.Save(ctx, in)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	if err := s.evict(ctx, saved.Name); err != nil {
		return core.ConnectionProfile{}, err
	}
	return saved, nil
}

func (s *CachedProfileStore) Get(ctx context.Context, id string) (core.ConnectionProfile, error) {
	if s == nil || s.base == nil {
		return core.ConnectionProfile{}, fmt.Errorf("sqlstore: cached profile store is not configured")
	}
	return s.base.Get(ctx, id)
}

func (s *CachedProfileStore) GetByName(ctx context.Context, name string) (core.ConnectionProfile, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.ConnectionProfile{}, fmt.Errorf("sqlstore: cached profile store is not configured")
	}
	cacheKey, err := ProfileCacheKey(name)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	profile, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.ConnectionProfile, error) {
		return s.base.GetByName(ctx, name)
	})
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	profile.Parameters = profile.Parameters.Clone()
	return profile, nil
}

func (s *CachedProfileStore) List(ctx context.Context) ([]core.ConnectionProfile, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached profile store is not configured")
	}
	return s.base.List(ctx)
}

func (s *CachedProfileStore) Delete(ctx context.Context, name string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached profile store is not configured")
	}
	if err := s.base.Delete(ctx, name); err != nil {
		return err
	}
	return s.evict(ctx, name)
}

func (s *CachedProfileStore) evict(ctx context.Context, name string) error {
	cacheKey, err := ProfileCacheKey(name)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}
