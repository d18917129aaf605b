package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	ClassBrowserSPI           = "browser.SPI"
	ClassDefaultHTTPInvoker   = "transport.DefaultHTTPInvoker"
	ClassNoopHTTPInvoker      = "transport.NoopHTTPInvoker"
	ClassThrottledHTTPInvoker = "transport.ThrottledHTTPInvoker"
	ClassJSONCodec            = "codec.JSON"
)

// ParameterDefaults fills session parameters the caller left out. Values are
// kept as strings so they can be copied into Parameters verbatim.
type ParameterDefaults struct {
	SPIClass          string `koanf:"spi_class" mapstructure:"spi_class"`
	HTTPInvokerClass  string `koanf:"http_invoker_class" mapstructure:"http_invoker_class"`
	CodecClass        string `koanf:"codec_class" mapstructure:"codec_class"`
	ConnectTimeout    string `koanf:"connect_timeout" mapstructure:"connect_timeout"`
	ReadTimeout       string `koanf:"read_timeout" mapstructure:"read_timeout"`
	TypeDefinitionTTL string `koanf:"type_definition_ttl" mapstructure:"type_definition_ttl"`
	UserAgent         string `koanf:"user_agent" mapstructure:"user_agent"`
}

type Config struct {
	ServiceName string            `koanf:"service_name" mapstructure:"service_name"`
	Defaults    ParameterDefaults `koanf:"defaults" mapstructure:"defaults"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "cmis",
		Defaults: ParameterDefaults{
			SPIClass:          ClassBrowserSPI,
			HTTPInvokerClass:  ClassDefaultHTTPInvoker,
			CodecClass:        ClassJSONCodec,
			ConnectTimeout:    "30s",
			ReadTimeout:       "60s",
			TypeDefinitionTTL: "10m",
			UserAgent:         "go-cmis",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	for key, value := range map[string]string{
		"defaults.connect_timeout":     c.Defaults.ConnectTimeout,
		"defaults.read_timeout":        c.Defaults.ReadTimeout,
		"defaults.type_definition_ttl": c.Defaults.TypeDefinitionTTL,
	} {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("core: %s is not a valid duration: %w", key, err)
		}
	}
	return nil
}

// Parameters returns the non-empty defaults keyed by session parameter name.
func (d ParameterDefaults) Parameters() Parameters {
	out := Parameters{}
	for key, value := range map[string]string{
		ParamSPIClass:          d.SPIClass,
		ParamHTTPInvokerClass:  d.HTTPInvokerClass,
		ParamCodecClass:        d.CodecClass,
		ParamConnectTimeout:    d.ConnectTimeout,
		ParamReadTimeout:       d.ReadTimeout,
		ParamTypeDefinitionTTL: d.TypeDefinitionTTL,
		ParamUserAgent:         d.UserAgent,
	} {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out[key] = trimmed
		}
	}
	return out
}
