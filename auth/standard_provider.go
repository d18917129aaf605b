package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/goliatone/go-cmis/core"
)

type Kind string

const (
	KindNone   Kind = "none"
	KindBasic  Kind = "basic"
	KindBearer Kind = "bearer"
)

type StandardProviderConfig struct {
	Username string
	Password string
	Token    string
	// Headers are sent with every request in addition to the
	// authorization header.
	Headers map[string]string
}

// StandardProvider sends a bearer token when one is configured, otherwise
// basic credentials, otherwise nothing.
type StandardProvider struct {
	config StandardProviderConfig
}

func NewStandardProvider(params core.Parameters) *StandardProvider {
	return NewStandardProviderWithConfig(StandardProviderConfig{
		Username: params.Get(core.ParamUser),
		Password: params.Get(core.ParamPassword),
		Token:    params.Get(core.ParamAuthToken),
	})
}

func NewStandardProviderWithConfig(cfg StandardProviderConfig) *StandardProvider {
	return &StandardProvider{
		config: StandardProviderConfig{
			Username: firstNonEmpty(cfg.Username),
			Password: cfg.Password,
			Token:    firstNonEmpty(cfg.Token),
			Headers:  cloneHeaders(cfg.Headers),
		},
	}
}

func (p *StandardProvider) Kind() Kind {
	switch {
	case p == nil:
		return KindNone
	case p.config.Token != "":
		return KindBearer
	case p.config.Username != "":
		return KindBasic
	default:
		return KindNone
	}
}

func (p *StandardProvider) HTTPHeaders(context.Context, string) (map[string]string, error) {
	if p == nil {
		return map[string]string{}, nil
	}
	headers := cloneHeaders(p.config.Headers)
	switch p.Kind() {
	case KindBearer:
		headers["Authorization"] = "Bearer " + p.config.Token
	case KindBasic:
		if p.config.Password == "" {
			return nil, fmt.Errorf("auth: basic password is required for user %s", p.config.Username)
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(p.config.Username + ":" + p.config.Password))
		headers["Authorization"] = "Basic " + encoded
	}
	return headers, nil
}

var _ core.AuthenticationProvider = (*StandardProvider)(nil)
