package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// CollaboratorDescriptor describes one lazily resolved collaborator: the
// parameter naming its class, the session slot caching it and the
// capability the class must declare.
type CollaboratorDescriptor struct {
	Name       string
	ClassKey   string
	SlotKey    string
	Capability Capability
	// RequireCapability rejects classes without Capability before any
	// construction attempt. When false the capability is assumed and a
	// mismatch surfaces as a construction failure.
	RequireCapability bool
}

var (
	SPIDescriptor = CollaboratorDescriptor{
		Name:              "spi",
		ClassKey:          ParamSPIClass,
		SlotKey:           SlotSPI,
		Capability:        CapabilitySPI,
		RequireCapability: true,
	}
	HTTPInvokerDescriptor = CollaboratorDescriptor{
		Name:              "http invoker",
		ClassKey:          ParamHTTPInvokerClass,
		SlotKey:           SlotHTTPInvoker,
		Capability:        CapabilityHTTPInvoker,
		RequireCapability: true,
	}
	CodecDescriptor = CollaboratorDescriptor{
		Name:       "codec",
		ClassKey:   ParamCodecClass,
		SlotKey:    SlotCodec,
		Capability: CapabilityCodec,
	}
)

// Resolver lazily constructs and caches a session's collaborators.
type Resolver struct {
	registry        *ClassRegistry
	logger          Logger
	metricsRecorder MetricsRecorder
}

type ResolverOption func(*Resolver)

func WithResolverLogger(logger Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithResolverMetricsRecorder(recorder MetricsRecorder) ResolverOption {
	return func(r *Resolver) {
		if recorder != nil {
			r.metricsRecorder = recorder
		}
	}
}

func NewResolver(registry *ClassRegistry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = NewClassRegistry()
	}
	resolver := &Resolver{
		registry:        registry,
		logger:          glog.Nop(),
		metricsRecorder: NopMetricsRecorder{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(resolver)
	}
	resolver.logger = glog.Ensure(resolver.logger)
	return resolver
}

func (r *Resolver) Registry() *ClassRegistry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Resolver) Descriptors() []CollaboratorDescriptor {
	return []CollaboratorDescriptor{SPIDescriptor, HTTPInvokerDescriptor, CodecDescriptor}
}

// ResolveSPI returns the session's service endpoint, constructing it with
// the session on first use.
func (r *Resolver) ResolveSPI(session *Session) (SPI, error) {
	if err := r.validate(session); err != nil {
		return nil, err
	}
	return resolveSlot(r, session, SPIDescriptor, &session.spi, func(class ClassDescriptor) (SPI, error) {
		return class.SPI(session)
	})
}

func (r *Resolver) ResolveHTTPInvoker(session *Session) (HTTPInvoker, error) {
	if err := r.validate(session); err != nil {
		return nil, err
	}
	return resolveSlot(r, session, HTTPInvokerDescriptor, &session.invoker, func(class ClassDescriptor) (HTTPInvoker, error) {
		return class.HTTPInvoker()
	})
}

func (r *Resolver) ResolveCodec(session *Session) (Codec, error) {
	if err := r.validate(session); err != nil {
		return nil, err
	}
	return resolveSlot(r, session, CodecDescriptor, &session.codec, func(class ClassDescriptor) (Codec, error) {
		if class.Codec == nil {
			return nil, fmt.Errorf("core: class %s does not provide a codec", class.Name)
		}
		return class.Codec()
	})
}

func (r *Resolver) validate(session *Session) error {
	if r == nil || r.registry == nil {
		return goerrors.New("core: resolver is not configured", goerrors.CategoryInternal).
			WithCode(http.StatusInternalServerError).
			WithTextCode(ErrorInternal)
	}
	if session == nil {
		return goerrors.New("core: session is required", goerrors.CategoryBadInput).
			WithCode(http.StatusBadRequest).
			WithTextCode(ErrorInternal)
	}
	return nil
}

func resolveSlot[T any](
	r *Resolver,
	session *Session,
	descriptor CollaboratorDescriptor,
	slot *lazySlot[T],
	build func(ClassDescriptor) (T, error),
) (T, error) {
	if cached, ok := slot.load(); ok {
		return cached, nil
	}

	startedAt := time.Now()
	className := configuredClassName(session, descriptor.ClassKey)
	value, created, err := slot.getOrCreate(func() (T, error) {
		var zero T
		if className == "" {
			return zero, InvalidClassError(descriptor.Name, className)
		}
		class, ok := r.registry.Lookup(className)
		if !ok {
			return zero, InvalidClassError(descriptor.Name, className)
		}
		if descriptor.RequireCapability && !class.Provides(descriptor.Capability) {
			return zero, CapabilityMismatchError(descriptor.Name, className, descriptor.Capability)
		}
		return construct(descriptor.Name, className, func() (T, error) {
			return build(class)
		})
	})
	if err != nil || created {
		r.observe(startedAt, session, descriptor, className, err)
	}
	return value, err
}

// construct runs build and wraps any error or panic it raises so callers
// see one failure shape per class.
func construct[T any](collaborator string, className string, build func() (T, error)) (value T, err error) {
	var zero T
	defer func() {
		if recovered := recover(); recovered != nil {
			value = zero
			err = ConstructionFailedError(collaborator, className, fmt.Errorf("core: constructor panic: %v", recovered))
		}
	}()

	value, err = build()
	if err != nil {
		return zero, ConstructionFailedError(collaborator, className, err)
	}
	if any(value) == nil {
		return zero, ConstructionFailedError(collaborator, className, fmt.Errorf("core: constructor returned nil"))
	}
	return value, nil
}

func configuredClassName(session *Session, key string) string {
	raw, ok := session.Get(key)
	if !ok || raw == nil {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

func (r *Resolver) observe(
	startedAt time.Time,
	session *Session,
	descriptor CollaboratorDescriptor,
	className string,
	err error,
) {
	Observer{Logger: r.logger, MetricsRecorder: r.metricsRecorder}.ObserveOperation(
		context.Background(),
		startedAt,
		"resolve",
		err,
		map[string]any{
			"collaborator": descriptor.Name,
			"class_name":   className,
			"session_id":   session.ID(),
		},
	)
}
