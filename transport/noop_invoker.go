package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-cmis/core"
	goerrors "github.com/goliatone/go-errors"
)

// NoopHTTPInvoker rejects every request. It is registered for deployments
// that must not reach the network.
type NoopHTTPInvoker struct {
	reason string
}

func NewNoopHTTPInvoker(reason string) *NoopHTTPInvoker {
	return &NoopHTTPInvoker{reason: strings.TrimSpace(reason)}
}

func (i *NoopHTTPInvoker) Invoke(context.Context, *core.Session, core.InvokeRequest) (core.InvokeResponse, error) {
	message := "transport: http invoker is not configured"
	if i != nil && i.reason != "" {
		message += ": " + i.reason
	}
	return core.InvokeResponse{}, transportError(
		message,
		goerrors.CategoryOperation,
		http.StatusNotImplemented,
		map[string]any{"invoker": "noop"},
	)
}

var _ core.HTTPInvoker = (*NoopHTTPInvoker)(nil)
