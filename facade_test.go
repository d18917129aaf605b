package cmis

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	cmiscommand "github.com/goliatone/go-cmis/command"
	"github.com/goliatone/go-cmis/core"
	cmisquery "github.com/goliatone/go-cmis/query"
)

type memoryProfileStore struct {
	profiles map[string]core.ConnectionProfile
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{profiles: map[string]core.ConnectionProfile{}}
}

func (s *memoryProfileStore) Save(_ context.Context, in core.SaveProfileInput) (core.ConnectionProfile, error) {
	profile := core.ConnectionProfile{
		ID:          "profile-" + in.Name,
		Name:        in.Name,
		Description: in.Description,
		Parameters:  in.Parameters.Clone(),
	}
	s.profiles[in.Name] = profile
	return profile, nil
}

func (s *memoryProfileStore) GetByName(_ context.Context, name string) (core.ConnectionProfile, error) {
	profile, ok := s.profiles[name]
	if !ok {
		return core.ConnectionProfile{}, fmt.Errorf("%w: %s", core.ErrProfileNotFound, name)
	}
	return profile, nil
}

func (s *memoryProfileStore) List(context.Context) ([]core.ConnectionProfile, error) {
	out := make([]core.ConnectionProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		out = append(out, profile)
	}
	return out, nil
}

func (s *memoryProfileStore) Delete(_ context.Context, name string) error {
	if _, ok := s.profiles[name]; !ok {
		return fmt.Errorf("%w: %s", core.ErrProfileNotFound, name)
	}
	delete(s.profiles, name)
	return nil
}

func newBrowserServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var typeRequests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/browser", func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"exception":"permissionDenied","message":"bad credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"main":{"repositoryId":"main","repositoryName":"Main"}}`))
	})
	mux.HandleFunc("/browser/main", func(w http.ResponseWriter, r *http.Request) {
		typeRequests.Add(1)
		_, _ = w.Write([]byte(`{"id":"` + r.URL.Query().Get("typeId") + `","baseId":"cmis:folder"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &typeRequests
}

func TestNewFacade_WiresCommandsAndQueries(t *testing.T) {
	factory, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}

	facade, err := NewFacade(factory)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	commands := facade.Commands()
	if commands.CreateBinding == nil || commands.CloseBinding == nil {
		t.Fatalf("expected binding commands to be wired")
	}
	if commands.SaveProfile != nil || facade.Queries().LoadProfile != nil {
		t.Fatalf("expected profile handlers to stay unwired without a store")
	}

	withProfiles, err := NewFacade(factory, WithProfileStore(newMemoryProfileStore()))
	if err != nil {
		t.Fatalf("new facade with profiles: %v", err)
	}
	if withProfiles.Commands().SaveProfile == nil || withProfiles.Queries().ListProfiles == nil {
		t.Fatalf("expected profile handlers to be wired")
	}
}

func TestNewFacade_RequiresCreator(t *testing.T) {
	facade, err := NewFacade(nil)
	if err == nil {
		t.Fatalf("expected nil creator error")
	}
	if facade != nil {
		t.Fatalf("expected nil facade on error")
	}
}

func TestFacade_BrowserBindingFromSavedProfile(t *testing.T) {
	server, typeRequests := newBrowserServer(t)
	factory, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	store := newMemoryProfileStore()
	facade, err := NewFacade(factory, WithProfileStore(store))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	ctx := context.Background()

	if err := facade.Commands().SaveProfile.Execute(ctx, cmiscommand.SaveProfileMessage{Input: core.SaveProfileInput{
		Name: "local",
		Parameters: core.Parameters{
			core.ParamBindingType: "browser",
			core.ParamBrowserURL:  server.URL + "/browser",
			core.ParamUser:        "admin",
		},
	}}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	binding, err := facade.CreateBinding(ctx, cmiscommand.CreateBindingMessage{
		Profile:    "local",
		Parameters: core.Parameters{core.ParamPassword: "secret"},
	})
	if err != nil {
		t.Fatalf("create binding: %v", err)
	}
	defer binding.Close()

	infos, err := facade.Queries().GetRepositoryInfos.Query(ctx, cmisquery.GetRepositoryInfosMessage{Binding: binding})
	if err != nil {
		t.Fatalf("repository infos: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != "main" {
		t.Fatalf("unexpected repository infos %#v", infos)
	}

	for range 2 {
		typeDef, err := facade.Queries().GetTypeDefinition.Query(ctx, cmisquery.GetTypeDefinitionMessage{
			Binding:      binding,
			RepositoryID: "main",
			TypeID:       "cmis:folder",
		})
		if err != nil {
			t.Fatalf("type definition: %v", err)
		}
		if typeDef.BaseID != "cmis:folder" {
			t.Fatalf("unexpected type definition %#v", typeDef)
		}
	}
	if got := typeRequests.Load(); got != 1 {
		t.Fatalf("expected cached type definition after first fetch, got %d requests", got)
	}
}

func TestFacade_CreateBindingSurfacesSelectorErrors(t *testing.T) {
	factory, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	facade, err := NewFacade(factory)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	cases := map[string]struct {
		params core.Parameters
		kind   ErrorKind
	}{
		"empty":        {params: core.Parameters{}, kind: core.KindMissingConfiguration},
		"missing type": {params: core.Parameters{core.ParamUser: "admin"}, kind: core.KindMissingBindingType},
		"invalid":      {params: core.Parameters{core.ParamBindingType: "soap"}, kind: core.KindInvalidBindingType},
		"atompub":      {params: core.Parameters{core.ParamBindingType: "atompub"}, kind: core.KindBindingNotImplemented},
	}
	for name, tc := range cases {
		_, err := facade.CreateBinding(context.Background(), cmiscommand.CreateBindingMessage{Parameters: tc.params})
		if !IsKind(err, tc.kind) {
			t.Fatalf("%s: expected %s, got %v", name, tc.kind, err)
		}
	}
}

func TestDefaultClassRegistry_RegistersBuiltInClasses(t *testing.T) {
	registry, err := DefaultClassRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	for _, name := range []string{
		core.ClassBrowserSPI,
		core.ClassDefaultHTTPInvoker,
		core.ClassNoopHTTPInvoker,
		core.ClassJSONCodec,
	} {
		if _, ok := registry.Lookup(name); !ok {
			t.Fatalf("expected %q to be registered", name)
		}
	}
}
