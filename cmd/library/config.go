package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-catalog-go/config"
	"github.com/AntonStoeckl/library-catalog-go/library"
	"github.com/AntonStoeckl/library-catalog-go/library/flatfile"
	"github.com/AntonStoeckl/library-catalog-go/library/oteladapters"
)

const serviceName = "library-catalog-cli"

// Config holds the environment configuration with the global command-line flags applied on top.
type Config struct {
	config.Config
	DefaultQuota int
	NoColor      bool
}

// ObservabilityConfig holds the observability adapters handed to the engine and the store.
type ObservabilityConfig struct {
	Logger           library.Logger
	ContextualLogger library.ContextualLogger
	MetricsCollector library.MetricsCollector
	TracingCollector library.TracingCollector
}

// parseGlobalFlags reads .env and the environment, then applies the global flags in args.
// It returns the remaining arguments, starting with the command name.
func parseGlobalFlags(args []string, stderr io.Writer) (Config, []string, error) {
	base, err := config.Load()
	if err != nil {
		return Config{}, nil, err
	}

	fs := flag.NewFlagSet("library", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	var (
		dataDir       = fs.String("data-dir", base.DataDir, "directory holding the books, members and history files")
		logLevel      = fs.String("log-level", base.LogLevel.String(), "log level: debug, info, warn or error")
		observability = fs.Bool("observability-enabled", base.ObservabilityEnabled, "export traces and metrics over OTLP gRPC")
		quota         = fs.Int("default-quota", library.DefaultQuota, "loan quota of registered and loaded members")
		noColor       = fs.Bool("no-color", false, "disable colored output")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	level, err := config.ParseLogLevel(*logLevel)
	if err != nil {
		return Config{}, nil, err
	}

	cfg := Config{Config: base, DefaultQuota: *quota, NoColor: *noColor}
	cfg.DataDir = *dataDir
	cfg.LogLevel = level
	cfg.ObservabilityEnabled = *observability

	return cfg, fs.Args(), nil
}

// newObservabilityConfig always logs to stderr with a text handler. With observability enabled,
// logs go through the OpenTelemetry slog bridge instead and traces and metrics are exported.
// The returned function flushes and stops the providers.
func (c Config) newObservabilityConfig(ctx context.Context, stderr io.Writer) (ObservabilityConfig, func()) {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: c.LogLevel}))
	noop := func() {}

	if !c.ObservabilityEnabled {
		return ObservabilityConfig{Logger: logger}, noop
	}

	providers, err := config.NewObservabilityProviders(ctx, c.Config, serviceName)
	if err != nil {
		logger.Warn("observability disabled, creating providers failed", "error", err.Error())
		return ObservabilityConfig{Logger: logger}, noop
	}

	shutdown := func() {
		if err := providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("shutting down observability providers failed", "error", err.Error())
		}
	}

	return ObservabilityConfig{
		ContextualLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		MetricsCollector: oteladapters.NewMetricsCollector(otel.Meter(serviceName)),
		TracingCollector: oteladapters.NewTracingCollector(otel.Tracer(serviceName)),
	}, shutdown
}

// newEngine builds the engine and the store with the configured observability adapters.
func newEngine(cfg Config, obs ObservabilityConfig) (*library.Library, *flatfile.Store, error) {
	libOptions := []library.Option{library.WithDefaultQuota(cfg.DefaultQuota)}
	var storeOptions []flatfile.Option

	if obs.Logger != nil {
		libOptions = append(libOptions, library.WithLogger(obs.Logger))
		storeOptions = append(storeOptions, flatfile.WithLogger(obs.Logger))
	}

	if obs.ContextualLogger != nil {
		libOptions = append(libOptions, library.WithContextualLogger(obs.ContextualLogger))
		storeOptions = append(storeOptions, flatfile.WithContextualLogger(obs.ContextualLogger))
	}

	if obs.MetricsCollector != nil {
		libOptions = append(libOptions, library.WithMetrics(obs.MetricsCollector))
		storeOptions = append(storeOptions, flatfile.WithMetrics(obs.MetricsCollector))
	}

	if obs.TracingCollector != nil {
		storeOptions = append(storeOptions, flatfile.WithTracing(obs.TracingCollector))
	}

	lib, err := library.New(libOptions...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating library failed: %w", err)
	}

	store, err := flatfile.NewStore(cfg.DataDir, storeOptions...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating store failed: %w", err)
	}

	return lib, store, nil
}

var errUsage = errors.New("usage error")
