package library

import (
	"context"
	"time"
)

// Logger interface for informational reports, warnings and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// It follows the same dependency-free pattern as MetricsCollector and TracingCollector,
// so any logging backend (OpenTelemetry, slog, ...) can be plugged in.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting operational metrics of the engine and its persistence.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for trace correlation.
// It is optional: callers use the context-aware methods when available and fall back to MetricsCollector.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting tracing information around blocking operations.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

const (
	// OperationsMetric counts engine operations by operation and status.
	OperationsMetric = "library_operations_total"

	// StatusSuccess indicates an operation changed state.
	StatusSuccess = "success"
	// StatusError indicates an operation was aborted.
	StatusError = "error"
	// StatusIdempotent indicates an operation was tolerated without a state change.
	StatusIdempotent = "idempotent"

	// LogAttrOperation identifies the engine operation in logs and metric labels.
	LogAttrOperation = "operation"
	// LogAttrStatus carries the operation status in logs and metric labels.
	LogAttrStatus = "status"
	// LogAttrBookID carries the book ID.
	LogAttrBookID = "book_id"
	// LogAttrMemberID carries the member ID.
	LogAttrMemberID = "member_id"
	// LogAttrError contains error details.
	LogAttrError = "error"

	operationAddBook        = "add_book"
	operationRemoveBook     = "remove_book"
	operationRegisterMember = "register_member"
	operationBorrow         = "borrow"
	operationReturn         = "return"
	operationRestore        = "restore"
)

// logInfo logs at info level if a logger is configured.
func (l *Library) logInfo(msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.InfoContext(context.Background(), msg, args...)
		return
	}

	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

// logWarn logs at warn level if a logger is configured.
func (l *Library) logWarn(msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.WarnContext(context.Background(), msg, args...)
		return
	}

	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}

// recordOperation counts an operation outcome if a metrics collector is configured.
func (l *Library) recordOperation(operation, status string) {
	if l.metricsCollector == nil {
		return
	}

	l.metricsCollector.IncrementCounter(OperationsMetric, map[string]string{
		LogAttrOperation: operation,
		LogAttrStatus:    status,
	})
}
