package library

import "time"

// Option defines a functional option for configuring a Library.
type Option func(*Library) error

// WithClock sets the time source used to date history entries.
func WithClock(now func() time.Time) Option {
	return func(l *Library) error {
		if now == nil {
			return ErrNilClock
		}

		l.now = now

		return nil
	}
}

// WithDefaultQuota sets the quota given to newly registered and restored members.
func WithDefaultQuota(quota int) Option {
	return func(l *Library) error {
		if quota <= 0 {
			return ErrInvalidQuota
		}

		l.defaultQuota = quota

		return nil
	}
}

// WithLogger sets the logger for the Library.
//
// Info level: duplicate additions and other tolerated irregularities
// Warn level: operations aborted by one of the four business errors.
func WithLogger(logger Logger) Option {
	return func(l *Library) error {
		l.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Library. It takes precedence over WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(l *Library) error {
		l.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector which counts engine operations by outcome.
func WithMetrics(collector MetricsCollector) Option {
	return func(l *Library) error {
		l.metricsCollector = collector
		return nil
	}
}
