package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// convertToZapFields converts an error and additional field maps into Zap's
// structured logging fields. If multiple field maps contain the same key,
// later maps override earlier ones.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// traceFields extracts trace and span IDs from the context when tracing is
// enabled and the context carries a valid span.
func (l *LoggerClient) traceFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// Info logs an informational message, along with an optional error and
// structured fields. Use Info for general application progress and
// successful operations.
//
// Example:
//
//	log.Info("page decoded", nil, map[string]interface{}{
//	    "field_name": "events",
//	    "items":      42,
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message, useful for development and
// troubleshooting.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning message, indicating potential issues that aren't
// necessarily errors.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs an error message, including details of the error and
// additional context fields.
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs a critical error message and terminates the application.
// Use Fatal only for errors that make it impossible to continue running.
//
// Note: this function does not return.
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// InfoWithContext logs an informational message and, when tracing is
// enabled, attaches the trace and span IDs found in ctx.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := append(l.traceFields(ctx), l.convertToZapFields(err, fields...)...)
	l.Zap.Info(msg, zapFields...)
}

// DebugWithContext is the context-aware variant of Debug.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := append(l.traceFields(ctx), l.convertToZapFields(err, fields...)...)
	l.Zap.Debug(msg, zapFields...)
}

// WarnWithContext is the context-aware variant of Warn.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := append(l.traceFields(ctx), l.convertToZapFields(err, fields...)...)
	l.Zap.Warn(msg, zapFields...)
}

// ErrorWithContext is the context-aware variant of Error.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := append(l.traceFields(ctx), l.convertToZapFields(err, fields...)...)
	l.Zap.Error(msg, zapFields...)
}
