package core

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Slot keys under which resolved collaborators are visible through
// Session.Get and Session.Put.
const (
	SlotSPI         = "cmis.session.slot.spi"
	SlotHTTPInvoker = "cmis.session.slot.httpinvoker"
	SlotCodec       = "cmis.session.slot.codec"
)

// Session is the per-connection store used for parameter lookup and
// collaborator caching. Once a slot is populated it returns the same
// instance until the session is discarded or reset.
type Session struct {
	id        string
	params    Parameters
	resolver  *Resolver
	auth      AuthenticationProvider
	typeCache TypeDefinitionCache

	mu     sync.RWMutex
	values map[string]any

	spi     lazySlot[SPI]
	invoker lazySlot[HTTPInvoker]
	codec   lazySlot[Codec]
}

type SessionOption func(*Session)

func WithSessionResolver(resolver *Resolver) SessionOption {
	return func(s *Session) {
		s.resolver = resolver
	}
}

func WithAuthenticationProvider(provider AuthenticationProvider) SessionOption {
	return func(s *Session) {
		s.auth = provider
	}
}

func WithTypeDefinitionCache(cache TypeDefinitionCache) SessionOption {
	return func(s *Session) {
		s.typeCache = cache
	}
}

func NewSession(params Parameters, opts ...SessionOption) *Session {
	session := &Session{
		params: params.Clone(),
		values: map[string]any{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(session)
	}
	session.id = session.params.Get(ParamSessionID)
	if session.id == "" {
		session.id = uuid.NewString()
	}
	return session
}

func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

func (s *Session) Parameters() Parameters {
	if s == nil {
		return Parameters{}
	}
	return s.params.Clone()
}

func (s *Session) Parameter(key string) string {
	if s == nil {
		return ""
	}
	return s.params.Get(key)
}

// Get returns the value stored under key. Slot keys return the cached
// collaborator, parameter keys return the configured string.
func (s *Session) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	switch key {
	case SlotSPI:
		return slotValue(s.spi.load())
	case SlotHTTPInvoker:
		return slotValue(s.invoker.load())
	case SlotCodec:
		return slotValue(s.codec.load())
	}

	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		return value, true
	}
	if raw, exists := s.params.Lookup(key); exists {
		return raw, true
	}
	return nil, false
}

// Put stores value under key. Values put into slot keys must satisfy the
// slot's capability.
func (s *Session) Put(key string, value any) error {
	if s == nil {
		return fmt.Errorf("core: session is nil")
	}
	switch key {
	case SlotSPI:
		typed, ok := value.(SPI)
		if !ok {
			return slotTypeError(key, value)
		}
		s.spi.store(typed)
		return nil
	case SlotHTTPInvoker:
		typed, ok := value.(HTTPInvoker)
		if !ok {
			return slotTypeError(key, value)
		}
		s.invoker.store(typed)
		return nil
	case SlotCodec:
		typed, ok := value.(Codec)
		if !ok {
			return slotTypeError(key, value)
		}
		s.codec.store(typed)
		return nil
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Session) AuthenticationProvider() AuthenticationProvider {
	if s == nil {
		return nil
	}
	return s.auth
}

func (s *Session) TypeDefinitionCache() TypeDefinitionCache {
	if s == nil {
		return nil
	}
	return s.typeCache
}

func (s *Session) SPI() (SPI, error) {
	resolver, err := s.boundResolver()
	if err != nil {
		return nil, err
	}
	return resolver.ResolveSPI(s)
}

func (s *Session) HTTPInvoker() (HTTPInvoker, error) {
	resolver, err := s.boundResolver()
	if err != nil {
		return nil, err
	}
	return resolver.ResolveHTTPInvoker(s)
}

func (s *Session) Codec() (Codec, error) {
	resolver, err := s.boundResolver()
	if err != nil {
		return nil, err
	}
	return resolver.ResolveCodec(s)
}

// Reset drops every cached collaborator and returns the SPI that was
// cached, if any, so the caller can close it.
func (s *Session) Reset() SPI {
	if s == nil {
		return nil
	}
	spi, _ := s.spi.reset()
	s.invoker.reset()
	s.codec.reset()
	return spi
}

func (s *Session) boundResolver() (*Resolver, error) {
	if s == nil {
		return nil, fmt.Errorf("core: session is nil")
	}
	if s.resolver == nil {
		return nil, goerrors.New("core: session has no resolver", goerrors.CategoryInternal).
			WithCode(http.StatusInternalServerError).
			WithTextCode(ErrorInternal)
	}
	return s.resolver, nil
}

func slotValue[T any](value T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return value, true
}

func slotTypeError(key string, value any) error {
	return fmt.Errorf("core: value of type %T cannot be stored in %s", value, strings.TrimSpace(key))
}

// lazySlot is a get-or-insert cell. The mutex is held across construction
// so concurrent callers observe a single instance.
type lazySlot[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

func (s *lazySlot[T]) load() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

func (s *lazySlot[T]) store(value T) {
	s.mu.Lock()
	s.value = value
	s.set = true
	s.mu.Unlock()
}

func (s *lazySlot[T]) getOrCreate(create func() (T, error)) (value T, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return s.value, false, nil
	}
	value, err = create()
	if err != nil {
		var zero T
		return zero, false, err
	}
	s.value = value
	s.set = true
	return value, true, nil
}

func (s *lazySlot[T]) reset() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.value, s.set
	var zero T
	s.value = zero
	s.set = false
	return value, ok
}
