package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-cmis/core"
	goerrors "github.com/goliatone/go-errors"
)

const KindHTTP = "http"

const defaultConnectTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPInvoker sends requests through net/http. Per-session settings
// (auth headers, user agent, read timeout) are taken from the session on
// every call.
type DefaultHTTPInvoker struct {
	Client               HTTPDoer
	DefaultHeaders       map[string]string
	MaxResponseBodyBytes int64
}

func NewDefaultHTTPInvoker(client HTTPDoer) *DefaultHTTPInvoker {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: defaultConnectTimeout}).DialContext,
				TLSHandshakeTimeout: defaultConnectTimeout,
			},
		}
	}
	return &DefaultHTTPInvoker{
		Client:               client,
		DefaultHeaders:       map[string]string{},
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

func (i *DefaultHTTPInvoker) Invoke(
	ctx context.Context,
	session *core.Session,
	req core.InvokeRequest,
) (core.InvokeResponse, error) {
	if i == nil || i.Client == nil {
		return core.InvokeResponse{}, transportError(
			"transport: http invoker requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"invoker": KindHTTP},
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return core.InvokeResponse{}, transportError(
			"transport: request url is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"invoker": KindHTTP},
		)
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return core.InvokeResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid request url",
			http.StatusBadRequest,
			map[string]any{"invoker": KindHTTP, "url": rawURL},
		)
	}

	query := parsedURL.Query()
	for key, value := range req.Query {
		if strings.TrimSpace(key) == "" {
			continue
		}
		query.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	parsedURL.RawQuery = query.Encode()

	timeout := req.Timeout
	if timeout <= 0 && session != nil {
		timeout = session.Parameters().Duration(core.ParamReadTimeout, 0)
	}
	requestCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, method, parsedURL.String(), bytes.NewReader(req.Body))
	if err != nil {
		return core.InvokeResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create http request",
			http.StatusBadRequest,
			map[string]any{"invoker": KindHTTP, "method": method, "url": parsedURL.String()},
		)
	}
	if err := i.applyHeaders(requestCtx, httpReq, session, req); err != nil {
		return core.InvokeResponse{}, err
	}

	startedAt := time.Now().UTC()
	httpRes, err := i.Client.Do(httpReq)
	if err != nil {
		return core.InvokeResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute http request",
			http.StatusBadGateway,
			map[string]any{"invoker": KindHTTP, "method": method, "url": parsedURL.String()},
		)
	}
	defer httpRes.Body.Close()

	maxBodyBytes := resolveResponseBodyLimit(req.MaxResponseBodyBytes, i.MaxResponseBodyBytes)
	body, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return core.InvokeResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read response body",
			http.StatusBadGateway,
			map[string]any{"invoker": KindHTTP, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(body)) > maxBodyBytes {
		return core.InvokeResponse{}, transportError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{
				"invoker":          KindHTTP,
				"status_code":      httpRes.StatusCode,
				"response_limit_b": maxBodyBytes,
			},
		)
	}

	return core.InvokeResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       body,
		Metadata: map[string]any{
			"duration_ms": time.Since(startedAt).Milliseconds(),
			"kind":        KindHTTP,
		},
	}, nil
}

// applyHeaders layers default headers, session user agent, auth headers and
// request headers, later layers winning.
func (i *DefaultHTTPInvoker) applyHeaders(
	ctx context.Context,
	httpReq *http.Request,
	session *core.Session,
	req core.InvokeRequest,
) error {
	setHeaders(httpReq, i.DefaultHeaders)
	if session != nil {
		if agent := session.Parameter(core.ParamUserAgent); agent != "" {
			httpReq.Header.Set("User-Agent", agent)
		}
		if provider := session.AuthenticationProvider(); provider != nil {
			headers, err := provider.HTTPHeaders(ctx, httpReq.URL.String())
			if err != nil {
				return transportWrapError(
					err,
					goerrors.CategoryAuth,
					"transport: resolve authentication headers",
					http.StatusUnauthorized,
					map[string]any{"invoker": KindHTTP, "session_id": session.ID()},
				)
			}
			setHeaders(httpReq, headers)
		}
	}
	if contentType := strings.TrimSpace(req.ContentType); contentType != "" && len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", contentType)
	}
	setHeaders(httpReq, req.Headers)
	return nil
}

func setHeaders(httpReq *http.Request, headers map[string]string) {
	for key, value := range headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

func resolveResponseBodyLimit(requestLimit int64, invokerLimit int64) int64 {
	if requestLimit > 0 {
		return requestLimit
	}
	if invokerLimit > 0 {
		return invokerLimit
	}
	return defaultResponseBodyLimit
}

var _ core.HTTPInvoker = (*DefaultHTTPInvoker)(nil)
