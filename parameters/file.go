package parameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goliatone/go-cmis/core"
)

type fileConfig struct {
	Profile string `toml:"profile"`
	Binding struct {
		Type             string `toml:"type"`
		BrowserURL       string `toml:"browser_url"`
		SPIClass         string `toml:"spi_class"`
		HTTPInvokerClass string `toml:"http_invoker_class"`
		CodecClass       string `toml:"codec_class"`
	} `toml:"binding"`
	Auth struct {
		User     string `toml:"user"`
		Password string `toml:"password"`
		Token    string `toml:"token"`
	} `toml:"auth"`
	RepositoryID   string            `toml:"repository_id"`
	ConnectTimeout string            `toml:"connect_timeout"`
	ReadTimeout    string            `toml:"read_timeout"`
	Parameters     map[string]string `toml:"parameters"`
}

// LoadFile reads session parameters from a TOML file. Only keys present in
// the file are set, so an explicit empty value survives a later Merge.
//
//	profile = "dev"
//
//	[binding]
//	type = "browser"
//	browser_url = "https://cmis.example.com/browser"
//
//	[parameters]
//	"cmis.read.timeout" = "15s"
func LoadFile(path string) (core.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parameters: load %s: %w", path, err)
	}
	return Parse(string(data))
}

func Parse(data string) (core.Parameters, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parameters: parse toml: %w", err)
	}

	out := core.Parameters{}
	for key, value := range raw.Parameters {
		if strings.TrimSpace(key) == "" {
			continue
		}
		out[strings.TrimSpace(key)] = value
	}

	fields := []struct {
		path  []string
		key   string
		value string
	}{
		{[]string{"profile"}, core.ParamProfileName, raw.Profile},
		{[]string{"binding", "type"}, core.ParamBindingType, raw.Binding.Type},
		{[]string{"binding", "browser_url"}, core.ParamBrowserURL, raw.Binding.BrowserURL},
		{[]string{"binding", "spi_class"}, core.ParamSPIClass, raw.Binding.SPIClass},
		{[]string{"binding", "http_invoker_class"}, core.ParamHTTPInvokerClass, raw.Binding.HTTPInvokerClass},
		{[]string{"binding", "codec_class"}, core.ParamCodecClass, raw.Binding.CodecClass},
		{[]string{"auth", "user"}, core.ParamUser, raw.Auth.User},
		{[]string{"auth", "password"}, core.ParamPassword, raw.Auth.Password},
		{[]string{"auth", "token"}, core.ParamAuthToken, raw.Auth.Token},
		{[]string{"repository_id"}, core.ParamRepositoryID, raw.RepositoryID},
		{[]string{"connect_timeout"}, core.ParamConnectTimeout, raw.ConnectTimeout},
		{[]string{"read_timeout"}, core.ParamReadTimeout, raw.ReadTimeout},
	}
	for _, field := range fields {
		if meta.IsDefined(field.path...) {
			out[field.key] = field.value
		}
	}
	return out, nil
}
