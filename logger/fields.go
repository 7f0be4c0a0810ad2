package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across satgraph.
const (
	// Parse identity
	FieldParseID   = "parse_id"
	FieldComponent = "component"

	// Input location
	FieldFile = "file"
	FieldLine = "line"

	// Entities
	FieldEntityIndex = "entity_index"
	FieldEntityType  = "entity_type"
	FieldPreview     = "preview"
	FieldSubtype     = "subtype"

	// Errors
	FieldError     = "error"
	FieldErrorKind = "error_kind"

	// Counts and timing
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldDurationMS = "duration_ms"
)

type contextKey string

const (
	parseIDKey   contextKey = "logger_parse_id"
	componentKey contextKey = "logger_component"
)

// WithParseID adds a parse ID to the context for logging
func WithParseID(ctx context.Context, parseID string) context.Context {
	return context.WithValue(ctx, parseIDKey, parseID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Warnw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if parseID, ok := ctx.Value(parseIDKey).(string); ok && parseID != "" {
		fields = append(fields, FieldParseID, parseID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns base with the fields carried by ctx attached.
func LoggerFromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	p := sat.NewParser(sat.WithLogger(logger.ComponentLogger("sat.parser")))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
