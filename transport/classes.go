package transport

import (
	"github.com/goliatone/go-cmis/core"
)

// Register adds the transport classes to registry under their configured
// class names.
func Register(registry *core.ClassRegistry) error {
	if err := registry.RegisterHTTPInvoker(core.ClassDefaultHTTPInvoker, func() (core.HTTPInvoker, error) {
		return NewDefaultHTTPInvoker(nil), nil
	}); err != nil {
		return err
	}
	if err := registry.RegisterHTTPInvoker(core.ClassNoopHTTPInvoker, func() (core.HTTPInvoker, error) {
		return NewNoopHTTPInvoker(""), nil
	}); err != nil {
		return err
	}
	return registry.RegisterHTTPInvoker(core.ClassThrottledHTTPInvoker, func() (core.HTTPInvoker, error) {
		return NewThrottledHTTPInvoker(nil, nil), nil
	})
}
