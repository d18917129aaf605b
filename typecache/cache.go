package typecache

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cmis/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const keyPrefix = "go-cmis::typedef::v1"

// Cache keeps type definitions per repository. Entries live in a
// go-repository-cache service; the keys written through this Cache are
// tracked so a whole repository, or everything, can be dropped.
type Cache struct {
	service repositorycache.CacheService

	mu   sync.Mutex
	keys map[string]map[string]struct{}
}

// New builds a Cache on a fresh in-memory cache service. A non-positive
// ttl keeps the cache service default.
func New(ttl time.Duration) (*Cache, error) {
	config := repositorycache.DefaultConfig()
	if ttl > 0 {
		config.TTL = ttl
	}
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		return nil, fmt.Errorf("typecache: new cache service: %w", err)
	}
	return NewWithService(service)
}

func NewWithService(service repositorycache.CacheService) (*Cache, error) {
	if service == nil {
		return nil, fmt.Errorf("typecache: cache service is required")
	}
	return &Cache{service: service, keys: map[string]map[string]struct{}{}}, nil
}

// Key returns go-cmis::typedef::v1::<repository>::<type> with each segment
// URL-path escaped.
func Key(repositoryID string, typeID string) (string, error) {
	repositoryID = strings.TrimSpace(repositoryID)
	typeID = strings.TrimSpace(typeID)
	if repositoryID == "" {
		return "", fmt.Errorf("typecache: repository id is required")
	}
	if typeID == "" {
		return "", fmt.Errorf("typecache: type id is required")
	}
	return strings.Join([]string{keyPrefix, url.PathEscape(repositoryID), url.PathEscape(typeID)}, "::"), nil
}

func (c *Cache) GetOrLoad(
	ctx context.Context,
	repositoryID string,
	typeID string,
	load core.TypeDefinitionLoader,
) (core.TypeDefinition, error) {
	if c == nil || c.service == nil {
		return core.TypeDefinition{}, fmt.Errorf("typecache: cache is not configured")
	}
	if load == nil {
		return core.TypeDefinition{}, fmt.Errorf("typecache: loader is required")
	}
	key, err := Key(repositoryID, typeID)
	if err != nil {
		return core.TypeDefinition{}, err
	}

	definition, err := repositorycache.GetOrFetch(ctx, c.service, key, func(ctx context.Context) (core.TypeDefinition, error) {
		return load(ctx)
	})
	if err != nil {
		return core.TypeDefinition{}, err
	}
	c.track(strings.TrimSpace(repositoryID), key)
	return cloneDefinition(definition), nil
}

func (c *Cache) Invalidate(ctx context.Context, repositoryID string, typeID string) error {
	if c == nil || c.service == nil {
		return nil
	}
	key, err := Key(repositoryID, typeID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if tracked, ok := c.keys[strings.TrimSpace(repositoryID)]; ok {
		delete(tracked, key)
	}
	c.mu.Unlock()
	return c.service.Delete(ctx, key)
}

func (c *Cache) InvalidateRepository(ctx context.Context, repositoryID string) error {
	if c == nil || c.service == nil {
		return nil
	}
	repositoryID = strings.TrimSpace(repositoryID)
	c.mu.Lock()
	keys := sortedKeys(c.keys[repositoryID])
	delete(c.keys, repositoryID)
	c.mu.Unlock()
	return c.delete(ctx, keys)
}

func (c *Cache) Clear(ctx context.Context) error {
	if c == nil || c.service == nil {
		return nil
	}
	c.mu.Lock()
	keys := make([]string, 0)
	for _, tracked := range c.keys {
		keys = append(keys, sortedKeys(tracked)...)
	}
	c.keys = map[string]map[string]struct{}{}
	c.mu.Unlock()
	return c.delete(ctx, keys)
}

// Len reports how many entries have been loaded and not yet invalidated.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, tracked := range c.keys {
		total += len(tracked)
	}
	return total
}

func (c *Cache) track(repositoryID string, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tracked, ok := c.keys[repositoryID]
	if !ok {
		tracked = map[string]struct{}{}
		c.keys[repositoryID] = tracked
	}
	tracked[key] = struct{}{}
}

func (c *Cache) delete(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := c.service.Delete(ctx, key); err != nil {
			return fmt.Errorf("typecache: delete %s: %w", key, err)
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func cloneDefinition(definition core.TypeDefinition) core.TypeDefinition {
	cloned := definition
	if len(definition.PropertyDefinitions) > 0 {
		cloned.PropertyDefinitions = make(map[string]core.PropertyDefinition, len(definition.PropertyDefinitions))
		for key, value := range definition.PropertyDefinitions {
			cloned.PropertyDefinitions[key] = value
		}
	}
	return cloned
}

var _ core.TypeDefinitionCache = (*Cache)(nil)
