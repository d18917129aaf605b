package core

import (
	"context"
	"errors"
	"testing"
)

type mapRawLoader struct {
	values map[string]any
	err    error
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	return l.values, l.err
}

func TestResolveConfig_UsesDefaults(t *testing.T) {
	cfg, err := ResolveConfig(context.Background(), Config{}, nil, nil)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.ServiceName != "cmis" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.Defaults.SPIClass != ClassBrowserSPI {
		t.Fatalf("expected default spi class, got %q", cfg.Defaults.SPIClass)
	}
	params := cfg.Defaults.Parameters()
	if params[ParamHTTPInvokerClass] != ClassDefaultHTTPInvoker || params[ParamCodecClass] != ClassJSONCodec {
		t.Fatalf("unexpected default parameters: %v", params)
	}
}

func TestResolveConfig_LayeringPrecedence(t *testing.T) {
	provider := NewCfgxConfigProvider(mapRawLoader{values: map[string]any{
		"service_name": "from-config",
		"defaults": map[string]any{
			"codec_class":  "custom.Codec",
			"read_timeout": "5s",
		},
	}})

	cfg, err := ResolveConfig(context.Background(), Config{ServiceName: "from-runtime"}, provider, nil)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.ServiceName != "from-runtime" {
		t.Fatalf("expected runtime value to override config, got %q", cfg.ServiceName)
	}
	if cfg.Defaults.CodecClass != "custom.Codec" {
		t.Fatalf("expected config layer codec class, got %q", cfg.Defaults.CodecClass)
	}
	if cfg.Defaults.ReadTimeout != "5s" {
		t.Fatalf("expected config layer read timeout, got %q", cfg.Defaults.ReadTimeout)
	}
	if cfg.Defaults.HTTPInvokerClass != ClassDefaultHTTPInvoker {
		t.Fatalf("expected default invoker class to survive layering, got %q", cfg.Defaults.HTTPInvokerClass)
	}
}

func TestResolveConfig_PropagatesLoaderAndValidationErrors(t *testing.T) {
	sentinel := errors.New("loader failed")
	_, err := ResolveConfig(context.Background(), Config{}, NewCfgxConfigProvider(mapRawLoader{err: sentinel}), nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected loader error, got %v", err)
	}

	_, err = ResolveConfig(context.Background(), Config{
		Defaults: ParameterDefaults{ConnectTimeout: "soon"},
	}, nil, nil)
	if err == nil {
		t.Fatalf("expected invalid duration to fail validation")
	}
}
