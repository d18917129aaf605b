package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Observer records operation outcomes as structured logs and metrics.
type Observer struct {
	Logger          Logger
	MetricsRecorder MetricsRecorder
}

func (o Observer) ObserveOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}

	contextFields := cloneFields(fields)
	contextFields["event_type"] = operation
	contextFields["status"] = status
	contextFields["duration_ms"] = time.Since(startedAt).Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
		contextFields["error_kind"] = KindOf(err).String()
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	for _, key := range []string{"binding_type", "collaborator"} {
		if value, ok := contextFields[key].(string); ok && strings.TrimSpace(value) != "" {
			tags[key] = strings.TrimSpace(value)
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if o.MetricsRecorder != nil {
		o.MetricsRecorder.IncCounter(ctx, "cmis."+operation+".total", 1, cloneTags(tags))
		o.MetricsRecorder.ObserveHistogram(
			ctx,
			"cmis."+operation+".duration_ms",
			float64(time.Since(startedAt).Milliseconds()),
			cloneTags(tags),
		)
	}

	logger := o.Logger
	if logger != nil {
		logger = logger.WithContext(ctx)
	}
	if err != nil {
		logWithFields(logger, "error", operation+" failed", contextFields)
		return
	}
	logWithFields(logger, "info", operation+" succeeded", contextFields)
}

func logWithFields(logger Logger, level string, message string, fields map[string]any) {
	if logger == nil {
		return
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
