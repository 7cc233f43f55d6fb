package flatfile

import "github.com/AntonStoeckl/library-catalog-go/library"

// Interface aliases for convenience, matching the library observability interfaces.

// Logger interface for basic logging.
type Logger = library.Logger

// ContextualLogger interface for context-aware logging.
type ContextualLogger = library.ContextualLogger

// MetricsCollector interface for collecting store metrics.
type MetricsCollector = library.MetricsCollector

// TracingCollector interface for tracing load and save operations.
type TracingCollector = library.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = library.SpanContext

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithFileNames overrides the names of the three files inside the data directory.
func WithFileNames(books, members, history string) Option {
	return func(s *Store) error {
		if books == "" || members == "" || history == "" {
			return ErrEmptyFileName
		}

		s.booksFile = books
		s.membersFile = members
		s.historyFile = history

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Info level: record counts and durations of loads and saves
// Warn level: skipped malformed lines
// Error level: I/O failures that abort a load or save.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store. It takes precedence over WithLogger
// and receives the span context of the running operation for trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives load/save durations, loaded record counts, skipped lines and errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// It receives one span per LoadAll and SaveAll call.
func WithTracing(collector TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
