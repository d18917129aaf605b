package browser

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cmis/core"
)

const (
	selectorRepositoryInfo = "repositoryInfo"
	selectorTypeDefinition = "typeDefinition"
)

// SPI talks to a browser binding endpoint. The invoker and codec are taken
// from the owning session on each call so they stay lazily resolved.
type SPI struct {
	session    *core.Session
	serviceURL string

	mu           sync.RWMutex
	repositories map[string]core.RepositoryInfo
}

func NewSPI(session *core.Session) (*SPI, error) {
	if session == nil {
		return nil, invalidURLError("", nil)
	}
	serviceURL, err := normalizeServiceURL(session.Parameter(core.ParamBrowserURL))
	if err != nil {
		return nil, err
	}
	return &SPI{
		session:      session,
		serviceURL:   serviceURL,
		repositories: map[string]core.RepositoryInfo{},
	}, nil
}

func Register(registry *core.ClassRegistry) error {
	return registry.RegisterSPI(core.ClassBrowserSPI, func(session *core.Session) (core.SPI, error) {
		return NewSPI(session)
	})
}

func (s *SPI) ServiceURL() string {
	return s.serviceURL
}

func (s *SPI) GetRepositoryInfos(ctx context.Context) ([]core.RepositoryInfo, error) {
	infos, err := s.fetchRepositoryInfos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.RepositoryInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetRepositoryInfo serves from the repository cache filled by earlier
// lookups, fetching the service document on a miss.
func (s *SPI) GetRepositoryInfo(ctx context.Context, repositoryID string) (core.RepositoryInfo, error) {
	repositoryID = strings.TrimSpace(repositoryID)
	if repositoryID == "" {
		repositoryID = s.session.Parameter(core.ParamRepositoryID)
	}
	if repositoryID == "" {
		return core.RepositoryInfo{}, notFoundError("browser: repository id is required", map[string]any{
			"service_url": s.serviceURL,
		})
	}
	if info, ok := s.cachedRepository(repositoryID); ok {
		return info, nil
	}

	infos, err := s.fetchRepositoryInfos(ctx)
	if err != nil {
		return core.RepositoryInfo{}, err
	}
	info, ok := infos[repositoryID]
	if !ok {
		return core.RepositoryInfo{}, notFoundError("browser: repository not found: "+repositoryID, map[string]any{
			"repository_id": repositoryID,
			"service_url":   s.serviceURL,
		})
	}
	return info, nil
}

func (s *SPI) GetTypeDefinition(ctx context.Context, repositoryID string, typeID string) (core.TypeDefinition, error) {
	info, err := s.GetRepositoryInfo(ctx, repositoryID)
	if err != nil {
		return core.TypeDefinition{}, err
	}
	typeID = strings.TrimSpace(typeID)
	if typeID == "" {
		return core.TypeDefinition{}, notFoundError("browser: type id is required", map[string]any{
			"repository_id": info.ID,
		})
	}

	load := func(ctx context.Context) (core.TypeDefinition, error) {
		var definition core.TypeDefinition
		err := s.get(ctx, s.repositoryURL(info), map[string]string{
			"cmisselector": selectorTypeDefinition,
			"typeId":       typeID,
		}, &definition)
		if err != nil {
			return core.TypeDefinition{}, err
		}
		if strings.TrimSpace(definition.ID) == "" {
			definition.ID = typeID
		}
		return definition, nil
	}

	cache := s.session.TypeDefinitionCache()
	if cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoad(ctx, info.ID, typeID, load)
}

func (s *SPI) ClearRepositoryCache(ctx context.Context, repositoryID string) error {
	repositoryID = strings.TrimSpace(repositoryID)
	s.mu.Lock()
	delete(s.repositories, repositoryID)
	s.mu.Unlock()
	if cache := s.session.TypeDefinitionCache(); cache != nil && repositoryID != "" {
		return cache.InvalidateRepository(ctx, repositoryID)
	}
	return nil
}

func (s *SPI) Close() error {
	s.mu.Lock()
	s.repositories = map[string]core.RepositoryInfo{}
	s.mu.Unlock()
	return nil
}

func (s *SPI) fetchRepositoryInfos(ctx context.Context) (map[string]core.RepositoryInfo, error) {
	infos := map[string]core.RepositoryInfo{}
	err := s.get(ctx, s.serviceURL, map[string]string{"cmisselector": selectorRepositoryInfo}, &infos)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, info := range infos {
		if strings.TrimSpace(info.ID) == "" {
			info.ID = key
		}
		infos[key] = info
		s.repositories[info.ID] = info
	}
	return infos, nil
}

func (s *SPI) cachedRepository(repositoryID string) (core.RepositoryInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.repositories[repositoryID]
	return info, ok
}

func (s *SPI) repositoryURL(info core.RepositoryInfo) string {
	if trimmed := strings.TrimSpace(info.RepositoryURL); trimmed != "" {
		return trimmed
	}
	return strings.TrimRight(s.serviceURL, "/") + "/" + url.PathEscape(info.ID)
}

func (s *SPI) get(ctx context.Context, target string, query map[string]string, out any) error {
	invoker, err := s.session.HTTPInvoker()
	if err != nil {
		return err
	}
	codec, err := s.session.Codec()
	if err != nil {
		return err
	}

	res, err := invoker.Invoke(ctx, s.session, core.InvokeRequest{
		Method:  http.MethodGet,
		URL:     target,
		Query:   query,
		Headers: map[string]string{"Accept": codec.ContentType()},
	})
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var exception remoteException
		if len(res.Body) > 0 {
			_ = codec.Decode(res.Body, &exception)
		}
		return statusError(res.StatusCode, target, exception)
	}
	if err := codec.Decode(res.Body, out); err != nil {
		return invalidResponseError(err, map[string]any{
			"url":         target,
			"status_code": res.StatusCode,
		})
	}
	return nil
}

func normalizeServiceURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalidURLError(raw, nil)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", invalidURLError(raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", invalidURLError(raw, nil)
	}
	if parsed.Host == "" {
		return "", invalidURLError(raw, nil)
	}
	return parsed.String(), nil
}

var _ core.SPI = (*SPI)(nil)
