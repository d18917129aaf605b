package core

import (
	"sort"
	"strings"
	"time"
)

const (
	ParamBindingType       = "cmis.binding.type"
	ParamSPIClass          = "cmis.binding.spi.class"
	ParamHTTPInvokerClass  = "cmis.binding.httpinvoker.class"
	ParamCodecClass        = "cmis.binding.codec.class"
	ParamBrowserURL        = "cmis.binding.browser.url"
	ParamUser              = "cmis.user"
	ParamPassword          = "cmis.password"
	ParamAuthToken         = "cmis.auth.token"
	ParamRepositoryID      = "cmis.repository.id"
	ParamConnectTimeout    = "cmis.connect.timeout"
	ParamReadTimeout       = "cmis.read.timeout"
	ParamTypeDefinitionTTL = "cmis.typedefinition.cache.ttl"
	ParamSessionID         = "cmis.session.id"
	ParamUserAgent         = "cmis.user.agent"
	ParamProfileName       = "cmis.profile"
)

// Parameters is the caller-supplied configuration. Consumers treat it as
// immutable and work on clones.
type Parameters map[string]string

func (p Parameters) Clone() Parameters {
	if len(p) == 0 {
		return Parameters{}
	}
	out := make(Parameters, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

func (p Parameters) Lookup(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p[key]
	return value, ok
}

func (p Parameters) Get(key string) string {
	value, _ := p.Lookup(key)
	return strings.TrimSpace(value)
}

func (p Parameters) Duration(key string, fallback time.Duration) time.Duration {
	raw := p.Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func (p Parameters) Bool(key string) bool {
	switch strings.ToLower(p.Get(key)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// WithDefaults returns a clone where keys absent from p take the value from
// defaults. Keys present in p, even when empty, are kept.
func (p Parameters) WithDefaults(defaults Parameters) Parameters {
	out := p.Clone()
	for key, value := range defaults {
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = value
	}
	return out
}

func (p Parameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
