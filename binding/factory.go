package binding

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-cmis/adapters/gologger"
	"github.com/goliatone/go-cmis/core"
)

// Constructor builds one binding variant. It returns any so the factory can
// verify the result satisfies core.Binding before handing it out.
type Constructor func(params core.Parameters, auth core.AuthenticationProvider, cache core.TypeDefinitionCache) (any, error)

type TypeDefinitionCacheFactory func(params core.Parameters) (core.TypeDefinitionCache, error)

type AuthenticationProviderFactory func(params core.Parameters) core.AuthenticationProvider

// Factory selects and constructs bindings from session parameters.
type Factory struct {
	config        core.Config
	resolver      *core.Resolver
	logger        core.Logger
	observer      core.Observer
	constructors  map[core.BindingType]Constructor
	cacheFactory  TypeDefinitionCacheFactory
	authFactory   AuthenticationProviderFactory
	defaultParams core.Parameters
}

type factoryBuilder struct {
	runtimeConfig   core.Config
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	constructors    map[core.BindingType]Constructor
	cacheFactory    TypeDefinitionCacheFactory
	authFactory     AuthenticationProviderFactory
}

type Option func(*factoryBuilder)

func WithConfig(cfg core.Config) Option {
	return func(b *factoryBuilder) {
		b.runtimeConfig = cfg
	}
}

func WithLogger(logger core.Logger) Option {
	return func(b *factoryBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *factoryBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *factoryBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *factoryBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *factoryBuilder) {
		b.optionsResolver = resolver
	}
}

// WithConstructor wires a constructor for a binding variant. A nil
// constructor unwires the variant.
func WithConstructor(bindingType core.BindingType, ctor Constructor) Option {
	return func(b *factoryBuilder) {
		if b.constructors == nil {
			b.constructors = map[core.BindingType]Constructor{}
		}
		b.constructors[bindingType] = ctor
	}
}

func WithTypeDefinitionCacheFactory(factory TypeDefinitionCacheFactory) Option {
	return func(b *factoryBuilder) {
		b.cacheFactory = factory
	}
}

func WithAuthenticationProviderFactory(factory AuthenticationProviderFactory) Option {
	return func(b *factoryBuilder) {
		b.authFactory = factory
	}
}

func NewFactory(registry *core.ClassRegistry, opts ...Option) (*Factory, error) {
	builder := factoryBuilder{
		metricsRecorder: core.NopMetricsRecorder{},
		constructors:    map[core.BindingType]Constructor{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	cfg, err := core.ResolveConfig(
		context.Background(),
		builder.runtimeConfig,
		builder.configProvider,
		builder.optionsResolver,
	)
	if err != nil {
		return nil, fmt.Errorf("binding: resolve config: %w", err)
	}

	logger := gologger.ComponentLogger(cfg.ServiceName, "binding", builder.loggerProvider, builder.logger)
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = core.NopMetricsRecorder{}
	}

	factory := &Factory{
		config: cfg,
		resolver: core.NewResolver(registry,
			core.WithResolverLogger(logger),
			core.WithResolverMetricsRecorder(builder.metricsRecorder),
		),
		logger:        logger,
		observer:      core.Observer{Logger: logger, MetricsRecorder: builder.metricsRecorder},
		constructors:  map[core.BindingType]Constructor{},
		cacheFactory:  builder.cacheFactory,
		authFactory:   builder.authFactory,
		defaultParams: cfg.Defaults.Parameters(),
	}
	if factory.cacheFactory == nil {
		factory.cacheFactory = defaultTypeDefinitionCache
	}
	if factory.authFactory == nil {
		factory.authFactory = defaultAuthenticationProvider
	}

	factory.constructors[core.BindingTypeBrowser] = factory.newBrowserBinding
	for bindingType, ctor := range builder.constructors {
		if ctor == nil {
			delete(factory.constructors, bindingType)
			continue
		}
		factory.constructors[bindingType] = ctor
	}
	return factory, nil
}

func (f *Factory) Config() core.Config {
	if f == nil {
		return core.Config{}
	}
	return f.config
}

func (f *Factory) Resolver() *core.Resolver {
	if f == nil {
		return nil
	}
	return f.resolver
}

// Supported lists the binding variants this factory can construct.
func (f *Factory) Supported() []core.BindingType {
	if f == nil {
		return []core.BindingType{}
	}
	out := make([]core.BindingType, 0, len(f.constructors))
	for bindingType := range f.constructors {
		out = append(out, bindingType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CreateBinding validates params, selects the requested variant and
// constructs it. auth and cache are optional.
func (f *Factory) CreateBinding(
	params core.Parameters,
	auth core.AuthenticationProvider,
	cache core.TypeDefinitionCache,
) (core.Binding, error) {
	startedAt := time.Now()
	raw, _ := params.Lookup(core.ParamBindingType)
	binding, err := f.createBinding(params, auth, cache)

	fields := map[string]any{"binding_type": raw}
	if binding != nil {
		fields["session_id"] = binding.SessionID()
	}
	if f != nil {
		f.observer.ObserveOperation(context.Background(), startedAt, "create_binding", err, fields)
	}
	return binding, err
}

func (f *Factory) CreateBrowserBinding(
	params core.Parameters,
	auth core.AuthenticationProvider,
	cache core.TypeDefinitionCache,
) (core.Binding, error) {
	params = params.Clone()
	params[core.ParamBindingType] = string(core.BindingTypeBrowser)
	return f.CreateBinding(params, auth, cache)
}

func (f *Factory) createBinding(
	params core.Parameters,
	auth core.AuthenticationProvider,
	cache core.TypeDefinitionCache,
) (core.Binding, error) {
	if f == nil {
		return nil, fmt.Errorf("binding: factory is nil")
	}
	if len(params) == 0 {
		return nil, core.MissingConfigurationError()
	}
	raw, ok := params.Lookup(core.ParamBindingType)
	if !ok {
		return nil, core.MissingBindingTypeError()
	}
	bindingType, err := core.ParseBindingType(raw)
	if err != nil {
		return nil, err
	}

	var built any
	if ctor := f.constructorFor(bindingType); ctor != nil {
		built, err = ctor(params.Clone(), auth, cache)
		if err != nil {
			return nil, err
		}
	}
	binding, ok := built.(core.Binding)
	if !ok || binding == nil {
		return nil, core.BindingNotImplementedError(raw)
	}
	return binding, nil
}

// constructorFor maps every known variant to its constructor. Only the
// browser binding is wired by default; the rest resolve to nil.
func (f *Factory) constructorFor(bindingType core.BindingType) Constructor {
	switch bindingType {
	case core.BindingTypeBrowser,
		core.BindingTypeAtomPub,
		core.BindingTypeWebServices,
		core.BindingTypeCustom:
		return f.constructors[bindingType]
	default:
		return nil
	}
}
