package cmis

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cmis/binding"
	"github.com/goliatone/go-cmis/core"
)

// ClassPack registers a named group of collaborator classes.
type ClassPack struct {
	Name     string
	Register func(registry *core.ClassRegistry) error
}

// ConstructorPack wires constructors for binding variants that are not
// built in.
type ConstructorPack struct {
	Name         string
	Constructors map[core.BindingType]binding.Constructor
}

type ExtensionHooks struct {
	mu sync.RWMutex

	classPacks       map[string]ClassPack
	constructorPacks map[string]ConstructorPack
}

func NewExtensionHooks() *ExtensionHooks {
	return &ExtensionHooks{
		classPacks:       map[string]ClassPack{},
		constructorPacks: map[string]ConstructorPack{},
	}
}

func (h *ExtensionHooks) RegisterClassPack(pack ClassPack) error {
	if h == nil {
		return fmt.Errorf("cmis: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("cmis: class pack name is required")
	}
	if pack.Register == nil {
		return fmt.Errorf("cmis: class pack %q register func is required", name)
	}
	pack.Name = name

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.classPacks[name]; exists {
		return fmt.Errorf("cmis: class pack %q already registered", name)
	}
	h.classPacks[name] = pack
	return nil
}

func (h *ExtensionHooks) RegisterConstructorPack(pack ConstructorPack) error {
	if h == nil {
		return fmt.Errorf("cmis: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("cmis: constructor pack name is required")
	}
	if len(pack.Constructors) == 0 {
		return fmt.Errorf("cmis: constructor pack %q has no constructors", name)
	}
	normalized := ConstructorPack{
		Name:         name,
		Constructors: make(map[core.BindingType]binding.Constructor, len(pack.Constructors)),
	}
	for bindingType, ctor := range pack.Constructors {
		if !bindingType.Valid() {
			return fmt.Errorf("cmis: constructor pack %q names unknown binding type %q", name, bindingType)
		}
		if ctor == nil {
			return fmt.Errorf("cmis: constructor pack %q has nil constructor for %q", name, bindingType)
		}
		normalized.Constructors[bindingType] = ctor
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.constructorPacks[name]; exists {
		return fmt.Errorf("cmis: constructor pack %q already registered", name)
	}
	h.constructorPacks[name] = normalized
	return nil
}

// ApplyClassPacks registers every class pack into registry in name order.
func (h *ExtensionHooks) ApplyClassPacks(registry *core.ClassRegistry) error {
	if h == nil {
		return nil
	}
	if registry == nil {
		return fmt.Errorf("cmis: class registry is required")
	}
	for _, pack := range h.ClassPacks() {
		if err := pack.Register(registry); err != nil {
			return fmt.Errorf("cmis: apply class pack %q: %w", pack.Name, err)
		}
	}
	return nil
}

// FactoryOptions returns one WithConstructor option per wired variant. Packs
// are applied in name order, so a later pack overrides an earlier one.
func (h *ExtensionHooks) FactoryOptions() []Option {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.constructorPacks))
	for name := range h.constructorPacks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := []Option{}
	for _, name := range names {
		pack := h.constructorPacks[name]
		types := make([]core.BindingType, 0, len(pack.Constructors))
		for bindingType := range pack.Constructors {
			types = append(types, bindingType)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, bindingType := range types {
			out = append(out, binding.WithConstructor(bindingType, pack.Constructors[bindingType]))
		}
	}
	return out
}

func (h *ExtensionHooks) ClassPacks() []ClassPack {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.classPacks))
	for name := range h.classPacks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ClassPack, 0, len(names))
	for _, name := range names {
		out = append(out, h.classPacks[name])
	}
	return out
}

// NewFactory builds a factory over DefaultClassRegistry extended with the
// registered class packs and constructor packs. opts are applied last.
func (h *ExtensionHooks) NewFactory(opts ...Option) (*Factory, error) {
	registry, err := DefaultClassRegistry()
	if err != nil {
		return nil, err
	}
	if err := h.ApplyClassPacks(registry); err != nil {
		return nil, err
	}
	return binding.NewFactory(registry, append(h.FactoryOptions(), opts...)...)
}
