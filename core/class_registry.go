package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Capability names a collaborator contract a registered class can satisfy.
type Capability string

const (
	CapabilitySPI         Capability = "spi"
	CapabilityHTTPInvoker Capability = "http_invoker"
	CapabilityCodec       Capability = "codec"
)

type SPIConstructor func(session *Session) (SPI, error)

type HTTPInvokerConstructor func() (HTTPInvoker, error)

type CodecConstructor func() (Codec, error)

// ClassDescriptor holds the constructors registered under one class name.
// A nil constructor means the class does not provide that capability.
type ClassDescriptor struct {
	Name        string
	SPI         SPIConstructor
	HTTPInvoker HTTPInvokerConstructor
	Codec       CodecConstructor
}

func (d ClassDescriptor) Provides(capability Capability) bool {
	switch capability {
	case CapabilitySPI:
		return d.SPI != nil
	case CapabilityHTTPInvoker:
		return d.HTTPInvoker != nil
	case CapabilityCodec:
		return d.Codec != nil
	default:
		return false
	}
}

func (d ClassDescriptor) Capabilities() []Capability {
	out := make([]Capability, 0, 3)
	for _, capability := range []Capability{CapabilitySPI, CapabilityHTTPInvoker, CapabilityCodec} {
		if d.Provides(capability) {
			out = append(out, capability)
		}
	}
	return out
}

// ClassRegistry maps configured class names to capability-checked
// constructors. It is populated at startup and read during resolution.
type ClassRegistry struct {
	mu      sync.RWMutex
	classes map[string]ClassDescriptor
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{classes: map[string]ClassDescriptor{}}
}

func (r *ClassRegistry) RegisterSPI(name string, ctor SPIConstructor) error {
	if ctor == nil {
		return fmt.Errorf("core: spi constructor is nil")
	}
	return r.register(name, CapabilitySPI, func(d *ClassDescriptor) { d.SPI = ctor })
}

func (r *ClassRegistry) RegisterHTTPInvoker(name string, ctor HTTPInvokerConstructor) error {
	if ctor == nil {
		return fmt.Errorf("core: http invoker constructor is nil")
	}
	return r.register(name, CapabilityHTTPInvoker, func(d *ClassDescriptor) { d.HTTPInvoker = ctor })
}

func (r *ClassRegistry) RegisterCodec(name string, ctor CodecConstructor) error {
	if ctor == nil {
		return fmt.Errorf("core: codec constructor is nil")
	}
	return r.register(name, CapabilityCodec, func(d *ClassDescriptor) { d.Codec = ctor })
}

func (r *ClassRegistry) register(name string, capability Capability, apply func(*ClassDescriptor)) error {
	if r == nil {
		return fmt.Errorf("core: class registry is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("core: class name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.classes == nil {
		r.classes = map[string]ClassDescriptor{}
	}
	descriptor, exists := r.classes[name]
	if !exists {
		descriptor = ClassDescriptor{Name: name}
	}
	if descriptor.Provides(capability) {
		return fmt.Errorf("core: class %q already registered for %s", name, capability)
	}
	apply(&descriptor)
	r.classes[name] = descriptor
	return nil
}

func (r *ClassRegistry) Lookup(name string) (ClassDescriptor, bool) {
	if r == nil {
		return ClassDescriptor{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ClassDescriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.classes[name]
	return descriptor, ok
}

func (r *ClassRegistry) Capabilities(name string) []Capability {
	descriptor, ok := r.Lookup(name)
	if !ok {
		return nil
	}
	return descriptor.Capabilities()
}

func (r *ClassRegistry) Names() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
