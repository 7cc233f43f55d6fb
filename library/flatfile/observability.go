package flatfile

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

const (
	metricLoadDuration  = "library_store_load_duration_seconds"
	metricSaveDuration  = "library_store_save_duration_seconds"
	metricRecordsLoaded = "library_store_records_loaded"
	metricSkippedLines  = "library_store_skipped_lines_total"
	metricErrors        = "library_store_errors_total"

	spanNameLoadAll = "flatfile.load_all"
	spanNameSaveAll = "flatfile.save_all"

	operationLoadAll = "load_all"
	operationSaveAll = "save_all"

	statusSuccess = "success"
	statusError   = "error"

	logMsgLoaded      = "library loaded"
	logMsgSaved       = "library saved"
	logMsgSkippedLine = "skipped malformed line"
	logMsgLoadFailed  = "loading library failed"
	logMsgSaveFailed  = "saving library failed"

	logAttrOperation  = "operation"
	logAttrFile       = "file"
	logAttrLine       = "line"
	logAttrCollection = "collection"
	logAttrDurationMS = "duration_ms"
	logAttrError      = "error"

	collectionBooks   = "books"
	collectionMembers = "members"
	collectionHistory = "history"
)

func (s *Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDuration records a duration, using the context-aware method if the collector supports it.
func (s *Store) recordDuration(ctx context.Context, metricName string, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{logAttrOperation: operation, "status": status}

	if contextualCollector, ok := s.metricsCollector.(library.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricName, duration, labels)
}

// recordValue records a gauge value per collection.
func (s *Store) recordValue(ctx context.Context, metricName string, value float64, collection string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{logAttrCollection: collection}

	if contextualCollector, ok := s.metricsCollector.(library.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metricName, value, labels)
}

// incrementCounter increments a counter, using the context-aware method if the collector supports it.
func (s *Store) incrementCounter(ctx context.Context, metricName string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(library.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricName, labels)
}

func (s *Store) startSpan(ctx context.Context, name, operation string) (context.Context, SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, name, map[string]string{
		logAttrOperation: operation,
		"data_dir":       s.dataDir,
	})
}

func (s *Store) finishSpan(span SpanContext, status string, duration time.Duration, attrs map[string]string) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	span.AddAttribute(logAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
	s.tracingCollector.FinishSpan(span, status, attrs)
}

// observeSkipped logs and counts each skipped line of one file.
func (s *Store) observeSkipped(ctx context.Context, file, collection string, skipped []SkippedLine) {
	for _, sl := range skipped {
		s.logWarn(ctx, logMsgSkippedLine, logAttrFile, file, logAttrLine, sl.Line, logAttrError, sl.Err.Error())
		s.incrementCounter(ctx, metricSkippedLines, map[string]string{logAttrCollection: collection})
	}
}
