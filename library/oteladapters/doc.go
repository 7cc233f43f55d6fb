// Package oteladapters connects the library and flatfile observability interfaces to OpenTelemetry.
//
// The engine and the store only know the dependency-free interfaces declared in package library.
// This package supplies the OpenTelemetry-backed implementations used by cmd/library:
//
//	logger := oteladapters.NewSlogBridgeLogger("library")
//	metrics := oteladapters.NewMetricsCollector(otel.Meter("library"))
//	tracing := oteladapters.NewTracingCollector(otel.Tracer("library"))
//
//	lib, err := library.New(library.WithContextualLogger(logger), library.WithMetrics(metrics))
//	store, err := flatfile.NewStore(dir, flatfile.WithContextualLogger(logger), flatfile.WithTracing(tracing))
package oteladapters
