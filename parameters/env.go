package parameters

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-cmis/core"
	"github.com/joeshaw/envdecode"
)

// EnvConfig lists the environment variables read by FromEnv.
type EnvConfig struct {
	BindingType      string `env:"CMIS_BINDING_TYPE"`
	BrowserURL       string `env:"CMIS_BROWSER_URL"`
	SPIClass         string `env:"CMIS_SPI_CLASS"`
	HTTPInvokerClass string `env:"CMIS_HTTP_INVOKER_CLASS"`
	CodecClass       string `env:"CMIS_CODEC_CLASS"`
	User             string `env:"CMIS_USER"`
	Password         string `env:"CMIS_PASSWORD"`
	Token            string `env:"CMIS_AUTH_TOKEN"`
	RepositoryID     string `env:"CMIS_REPOSITORY_ID"`
	ConnectTimeout   string `env:"CMIS_CONNECT_TIMEOUT"`
	ReadTimeout      string `env:"CMIS_READ_TIMEOUT"`
	Profile          string `env:"CMIS_PROFILE"`
}

// FromEnv reads session parameters from CMIS_* environment variables. Unset
// and empty variables are left out.
func FromEnv() (core.Parameters, error) {
	var cfg EnvConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("parameters: decode environment: %w", err)
	}
	return cfg.Parameters(), nil
}

func (c EnvConfig) Parameters() core.Parameters {
	out := core.Parameters{}
	for key, value := range map[string]string{
		core.ParamBindingType:      c.BindingType,
		core.ParamBrowserURL:       c.BrowserURL,
		core.ParamSPIClass:         c.SPIClass,
		core.ParamHTTPInvokerClass: c.HTTPInvokerClass,
		core.ParamCodecClass:       c.CodecClass,
		core.ParamUser:             c.User,
		core.ParamPassword:         c.Password,
		core.ParamAuthToken:        c.Token,
		core.ParamRepositoryID:     c.RepositoryID,
		core.ParamConnectTimeout:   c.ConnectTimeout,
		core.ParamReadTimeout:      c.ReadTimeout,
		core.ParamProfileName:      c.Profile,
	} {
		if value != "" {
			out[key] = value
		}
	}
	return out
}
