package gologger

import (
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// ComponentLogger resolves the logger for one component of service. When a
// provider is available the logger is requested as "<service>.<component>".
func ComponentLogger(
	service string,
	component string,
	provider glog.LoggerProvider,
	logger glog.Logger,
) glog.Logger {
	service = strings.TrimSpace(service)
	resolvedProvider, resolved := Resolve(service, provider, logger)
	resolved = glog.Ensure(resolved)
	if resolvedProvider == nil {
		return resolved
	}
	name := service
	if component = strings.TrimSpace(component); component != "" {
		name = strings.Trim(service+"."+component, ".")
	}
	if named := resolvedProvider.GetLogger(name); named != nil {
		return glog.Ensure(named)
	}
	return resolved
}

// WithFields attaches fields when logger supports them and returns logger
// unchanged otherwise.
func WithFields(logger glog.Logger, fields map[string]any) glog.Logger {
	logger = glog.Ensure(logger)
	if len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(glog.FieldsLogger); ok {
		return fieldsLogger.WithFields(fields)
	}
	return logger
}
