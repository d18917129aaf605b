package typecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-cmis/core"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) load(typeID string) core.TypeDefinitionLoader {
	return func(context.Context) (core.TypeDefinition, error) {
		l.calls++
		if l.err != nil {
			return core.TypeDefinition{}, l.err
		}
		return core.TypeDefinition{ID: typeID, BaseID: "cmis:document"}, nil
	}
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := New(time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return cache
}

func TestCache_GetOrLoad_MissThenHit(t *testing.T) {
	cache := newTestCache(t)
	loader := &countingLoader{}
	ctx := context.Background()

	first, err := cache.GetOrLoad(ctx, "repo", "cmis:document", loader.load("cmis:document"))
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := cache.GetOrLoad(ctx, "repo", "cmis:document", loader.load("cmis:document"))
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected a single load, got %d", loader.calls)
	}
	if first.ID != second.ID || second.ID != "cmis:document" {
		t.Fatalf("unexpected definitions %#v %#v", first, second)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one tracked entry, got %d", cache.Len())
	}
}

func TestCache_GetOrLoad_PropagatesLoaderError(t *testing.T) {
	cache := newTestCache(t)
	sentinel := errors.New("unreachable")
	loader := &countingLoader{err: sentinel}

	_, err := cache.GetOrLoad(context.Background(), "repo", "cmis:folder", loader.load("cmis:folder"))
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected failed load not to be tracked")
	}
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	cache := newTestCache(t)
	loader := &countingLoader{}
	ctx := context.Background()

	if _, err := cache.GetOrLoad(ctx, "repo", "cmis:document", loader.load("cmis:document")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cache.Invalidate(ctx, "repo", "cmis:document"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := cache.GetOrLoad(ctx, "repo", "cmis:document", loader.load("cmis:document")); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, got %d calls", loader.calls)
	}
}

func TestCache_InvalidateRepositoryKeepsOtherRepositories(t *testing.T) {
	cache := newTestCache(t)
	loader := &countingLoader{}
	ctx := context.Background()

	for _, repo := range []string{"repo-a", "repo-b"} {
		if _, err := cache.GetOrLoad(ctx, repo, "cmis:document", loader.load("cmis:document")); err != nil {
			t.Fatalf("load %s: %v", repo, err)
		}
	}
	if err := cache.InvalidateRepository(ctx, "repo-a"); err != nil {
		t.Fatalf("invalidate repository: %v", err)
	}
	if _, err := cache.GetOrLoad(ctx, "repo-b", "cmis:document", loader.load("cmis:document")); err != nil {
		t.Fatalf("load repo-b: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected repo-b to stay cached, got %d calls", loader.calls)
	}
	if _, err := cache.GetOrLoad(ctx, "repo-a", "cmis:document", loader.load("cmis:document")); err != nil {
		t.Fatalf("reload repo-a: %v", err)
	}
	if loader.calls != 3 {
		t.Fatalf("expected repo-a to reload, got %d calls", loader.calls)
	}
}

func TestCache_ClearDropsEverything(t *testing.T) {
	cache := newTestCache(t)
	loader := &countingLoader{}
	ctx := context.Background()

	if _, err := cache.GetOrLoad(ctx, "repo", "cmis:document", loader.load("cmis:document")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after clear")
	}
	if _, err := cache.GetOrLoad(ctx, "repo", "cmis:document", loader.load("cmis:document")); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after clear, got %d calls", loader.calls)
	}
}

func TestKey_EscapesSegmentsAndRequiresIDs(t *testing.T) {
	key, err := Key("repo one", "cmis:document")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if key != "go-cmis::typedef::v1::repo%20one::cmis:document" {
		t.Fatalf("unexpected key %q", key)
	}
	if _, err := Key("", "cmis:document"); err == nil {
		t.Fatalf("expected missing repository error")
	}
	if _, err := Key("repo", " "); err == nil {
		t.Fatalf("expected missing type error")
	}
}
