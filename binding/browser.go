package binding

import (
	"context"
	"time"

	"github.com/goliatone/go-cmis/auth"
	"github.com/goliatone/go-cmis/core"
	"github.com/goliatone/go-cmis/typecache"
)

const defaultTypeDefinitionTTL = 10 * time.Minute

// BrowserBinding is the browser (JSON over HTTP) binding. Its collaborators
// are resolved lazily through the session it owns.
type BrowserBinding struct {
	session    *core.Session
	repository *repositoryService
}

func (f *Factory) newBrowserBinding(
	params core.Parameters,
	authProvider core.AuthenticationProvider,
	cache core.TypeDefinitionCache,
) (any, error) {
	params = params.WithDefaults(f.defaultParams)
	if authProvider == nil {
		authProvider = f.authFactory(params)
	}
	if cache == nil {
		built, err := f.cacheFactory(params)
		if err != nil {
			return nil, err
		}
		cache = built
	}
	session := core.NewSession(params,
		core.WithSessionResolver(f.resolver),
		core.WithAuthenticationProvider(authProvider),
		core.WithTypeDefinitionCache(cache),
	)
	return NewBrowserBinding(session), nil
}

func NewBrowserBinding(session *core.Session) *BrowserBinding {
	binding := &BrowserBinding{session: session}
	binding.repository = &repositoryService{binding: binding}
	return binding
}

func (*BrowserBinding) BindingType() core.BindingType {
	return core.BindingTypeBrowser
}

func (b *BrowserBinding) SessionID() string {
	if b == nil {
		return ""
	}
	return b.session.ID()
}

func (b *BrowserBinding) Session() *core.Session {
	if b == nil {
		return nil
	}
	return b.session
}

func (b *BrowserBinding) GetSPI() (core.SPI, error) {
	return b.session.SPI()
}

func (b *BrowserBinding) RepositoryService() core.RepositoryService {
	return b.repository
}

// ClearAllCaches closes the cached SPI, drops every cached collaborator and
// empties the type-definition cache.
func (b *BrowserBinding) ClearAllCaches() {
	if b == nil || b.session == nil {
		return
	}
	if spi := b.session.Reset(); spi != nil {
		_ = spi.Close()
	}
	if cache := b.session.TypeDefinitionCache(); cache != nil {
		_ = cache.Clear(context.Background())
	}
}

func (b *BrowserBinding) Close() error {
	if b == nil || b.session == nil {
		return nil
	}
	if spi := b.session.Reset(); spi != nil {
		return spi.Close()
	}
	return nil
}

type repositoryService struct {
	binding *BrowserBinding
}

func (s *repositoryService) GetRepositoryInfos(ctx context.Context) ([]core.RepositoryInfo, error) {
	spi, err := s.binding.GetSPI()
	if err != nil {
		return nil, err
	}
	return spi.GetRepositoryInfos(ctx)
}

func (s *repositoryService) GetRepositoryInfo(ctx context.Context, repositoryID string) (core.RepositoryInfo, error) {
	spi, err := s.binding.GetSPI()
	if err != nil {
		return core.RepositoryInfo{}, err
	}
	return spi.GetRepositoryInfo(ctx, repositoryID)
}

func (s *repositoryService) GetTypeDefinition(
	ctx context.Context,
	repositoryID string,
	typeID string,
) (core.TypeDefinition, error) {
	spi, err := s.binding.GetSPI()
	if err != nil {
		return core.TypeDefinition{}, err
	}
	return spi.GetTypeDefinition(ctx, repositoryID, typeID)
}

func defaultTypeDefinitionCache(params core.Parameters) (core.TypeDefinitionCache, error) {
	return typecache.New(params.Duration(core.ParamTypeDefinitionTTL, defaultTypeDefinitionTTL))
}

func defaultAuthenticationProvider(params core.Parameters) core.AuthenticationProvider {
	return auth.NewStandardProvider(params)
}

var (
	_ core.Binding           = (*BrowserBinding)(nil)
	_ core.RepositoryService = (*repositoryService)(nil)
)
