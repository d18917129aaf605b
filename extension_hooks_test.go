package cmis

import (
	"context"
	"testing"

	"github.com/goliatone/go-cmis/binding"
	"github.com/goliatone/go-cmis/core"
)

type atomPubBinding struct {
	session *core.Session
}

func (*atomPubBinding) BindingType() core.BindingType { return core.BindingTypeAtomPub }

func (b *atomPubBinding) SessionID() string { return b.session.ID() }

func (b *atomPubBinding) GetSPI() (core.SPI, error) { return b.session.SPI() }

func (*atomPubBinding) RepositoryService() core.RepositoryService { return nil }

func (*atomPubBinding) ClearAllCaches() {}

func (*atomPubBinding) Close() error { return nil }

type staticSPI struct{}

func (staticSPI) GetRepositoryInfos(context.Context) ([]core.RepositoryInfo, error) { return nil, nil }

func (staticSPI) GetRepositoryInfo(_ context.Context, id string) (core.RepositoryInfo, error) {
	return core.RepositoryInfo{ID: id}, nil
}

func (staticSPI) GetTypeDefinition(_ context.Context, _ string, typeID string) (core.TypeDefinition, error) {
	return core.TypeDefinition{ID: typeID}, nil
}

func (staticSPI) ClearRepositoryCache(context.Context, string) error { return nil }

func (staticSPI) Close() error { return nil }

func TestExtensionHooks_WireCustomVariantAndClasses(t *testing.T) {
	hooks := NewExtensionHooks()
	if err := hooks.RegisterClassPack(ClassPack{
		Name: "atompub",
		Register: func(registry *core.ClassRegistry) error {
			return registry.RegisterSPI("atompub.SPI", func(*core.Session) (core.SPI, error) {
				return staticSPI{}, nil
			})
		},
	}); err != nil {
		t.Fatalf("register class pack: %v", err)
	}

	var resolver *core.Resolver
	if err := hooks.RegisterConstructorPack(ConstructorPack{
		Name: "atompub",
		Constructors: map[core.BindingType]binding.Constructor{
			core.BindingTypeAtomPub: func(params core.Parameters, _ core.AuthenticationProvider, _ core.TypeDefinitionCache) (any, error) {
				params[core.ParamSPIClass] = "atompub.SPI"
				return &atomPubBinding{session: core.NewSession(params, core.WithSessionResolver(resolver))}, nil
			},
		},
	}); err != nil {
		t.Fatalf("register constructor pack: %v", err)
	}

	factory, err := hooks.NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	resolver = factory.Resolver()

	if got := factory.Supported(); len(got) != 2 {
		t.Fatalf("expected browser and atompub to be supported, got %v", got)
	}
	created, err := factory.CreateBinding(core.Parameters{core.ParamBindingType: "atompub"}, nil, nil)
	if err != nil {
		t.Fatalf("create atompub binding: %v", err)
	}
	if created.BindingType() != core.BindingTypeAtomPub {
		t.Fatalf("expected atompub binding, got %q", created.BindingType())
	}
	if _, err := created.GetSPI(); err != nil {
		t.Fatalf("expected custom spi class to resolve: %v", err)
	}
}

func TestExtensionHooks_RejectsInvalidPacks(t *testing.T) {
	hooks := NewExtensionHooks()
	if err := hooks.RegisterClassPack(ClassPack{Name: " "}); err == nil {
		t.Fatalf("expected missing name error")
	}
	if err := hooks.RegisterClassPack(ClassPack{Name: "empty"}); err == nil {
		t.Fatalf("expected missing register func error")
	}
	if err := hooks.RegisterConstructorPack(ConstructorPack{
		Name:         "bad",
		Constructors: map[core.BindingType]binding.Constructor{"soap": nil},
	}); err == nil {
		t.Fatalf("expected unknown binding type error")
	}

	pack := ClassPack{Name: "dup", Register: func(*core.ClassRegistry) error { return nil }}
	if err := hooks.RegisterClassPack(pack); err != nil {
		t.Fatalf("register pack: %v", err)
	}
	if err := hooks.RegisterClassPack(pack); err == nil {
		t.Fatalf("expected duplicate pack error")
	}
}

func TestExtensionHooks_ClassPackConflictsSurface(t *testing.T) {
	hooks := NewExtensionHooks()
	if err := hooks.RegisterClassPack(ClassPack{
		Name: "shadow",
		Register: func(registry *core.ClassRegistry) error {
			return registry.RegisterCodec(core.ClassJSONCodec, func() (core.Codec, error) { return nil, nil })
		},
	}); err != nil {
		t.Fatalf("register class pack: %v", err)
	}
	if _, err := hooks.NewFactory(); err == nil {
		t.Fatalf("expected duplicate class registration to fail factory construction")
	}
}
