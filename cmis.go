package cmis

import (
	"fmt"

	"github.com/goliatone/go-cmis/binding"
	"github.com/goliatone/go-cmis/browser"
	"github.com/goliatone/go-cmis/codec"
	"github.com/goliatone/go-cmis/core"
	"github.com/goliatone/go-cmis/transport"
)

type Config = core.Config

type Parameters = core.Parameters

type BindingType = core.BindingType

type Binding = core.Binding
type SPI = core.SPI
type RepositoryService = core.RepositoryService
type AuthenticationProvider = core.AuthenticationProvider
type TypeDefinitionCache = core.TypeDefinitionCache
type Session = core.Session
type ClassRegistry = core.ClassRegistry

type RepositoryInfo = core.RepositoryInfo
type TypeDefinition = core.TypeDefinition
type ConnectionProfile = core.ConnectionProfile

type ErrorKind = core.ErrorKind

type Factory = binding.Factory

type Option = binding.Option

const (
	BindingTypeBrowser     = core.BindingTypeBrowser
	BindingTypeAtomPub     = core.BindingTypeAtomPub
	BindingTypeWebServices = core.BindingTypeWebServices
	BindingTypeCustom      = core.BindingTypeCustom
)

var (
	WithConfig                        = binding.WithConfig
	WithLogger                        = binding.WithLogger
	WithLoggerProvider                = binding.WithLoggerProvider
	WithMetricsRecorder               = binding.WithMetricsRecorder
	WithConfigProvider                = binding.WithConfigProvider
	WithOptionsResolver               = binding.WithOptionsResolver
	WithConstructor                   = binding.WithConstructor
	WithTypeDefinitionCacheFactory    = binding.WithTypeDefinitionCacheFactory
	WithAuthenticationProviderFactory = binding.WithAuthenticationProviderFactory
	KindOf                            = core.KindOf
	IsKind                            = core.IsKind
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// DefaultClassRegistry returns a registry holding the browser SPI, the HTTP
// invokers and the JSON codec under their default class names.
func DefaultClassRegistry() (*ClassRegistry, error) {
	registry := core.NewClassRegistry()
	for name, register := range map[string]func(*core.ClassRegistry) error{
		"browser":   browser.Register,
		"transport": transport.Register,
		"codec":     codec.Register,
	} {
		if err := register(registry); err != nil {
			return nil, fmt.Errorf("cmis: register %s classes: %w", name, err)
		}
	}
	return registry, nil
}

// NewFactory builds a binding factory over DefaultClassRegistry.
func NewFactory(opts ...Option) (*Factory, error) {
	registry, err := DefaultClassRegistry()
	if err != nil {
		return nil, err
	}
	return binding.NewFactory(registry, opts...)
}
