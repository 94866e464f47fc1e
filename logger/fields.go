package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across hiero.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRequestID = "request_id"
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldRemote    = "remote"

	// Operations
	FieldMethod = "method"
	FieldPath   = "path"
	FieldTool   = "tool"
	FieldSource = "source"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount     = "count"
	FieldSize      = "size"
	FieldBatchSize = "batch_size"

	// Status
	FieldStatus = "status"

	// Files and network
	FieldFile    = "file"
	FieldAddress = "address"
	FieldPort    = "port"

	// hiero-specific
	FieldGlyph        = "glyph"         // output sign (𓏤, 𓄿, ...)
	FieldTableVersion = "table_version" // sym.TableVersion of the tables used
)

// Context keys for propagating logging context
type contextKey string

const (
	requestIDKey contextKey = "logger_request_id"
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithRunID adds a batch run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// RequestIDFromContext returns the request ID stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RunIDFromContext returns the batch run ID stored by WithRunID.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// FromContext returns base with any fields carried by ctx.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	srv := &Server{logger: logger.ComponentLogger("server")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// WithGlyph tags a logger with the sign a message is about, keeping the
// sign out of the message text so logs stay greppable.
func WithGlyph(l *zap.SugaredLogger, glyph string) *zap.SugaredLogger {
	return l.With(FieldGlyph, glyph)
}
