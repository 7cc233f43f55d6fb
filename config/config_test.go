package config_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-catalog-go/config"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		config.EnvDataDir,
		config.EnvLogLevel,
		config.EnvObservabilityEnabled,
		config.EnvOTLPTraceEndpoint,
		config.EnvOTLPMetricEndpoint,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func Test_FromEnv_Defaults(t *testing.T) {
	// arrange
	clearEnv(t)

	// act
	cfg, err := config.FromEnv()

	// assert
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		DataDir:            config.DefaultDataDir,
		LogLevel:           config.DefaultLogLevel,
		OTLPTraceEndpoint:  config.DefaultOTLPEndpoint,
		OTLPMetricEndpoint: config.DefaultOTLPEndpoint,
	}, cfg)
}

func Test_FromEnv_ReadsVariables(t *testing.T) {
	// arrange
	clearEnv(t)
	t.Setenv(config.EnvDataDir, "/var/lib/library")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvObservabilityEnabled, "true")
	t.Setenv(config.EnvOTLPTraceEndpoint, "jaeger:4319")
	t.Setenv(config.EnvOTLPMetricEndpoint, "collector:4317")

	// act
	cfg, err := config.FromEnv()

	// assert
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/library", cfg.DataDir)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.ObservabilityEnabled)
	assert.Equal(t, "jaeger:4319", cfg.OTLPTraceEndpoint)
	assert.Equal(t, "collector:4317", cfg.OTLPMetricEndpoint)
}

func Test_FromEnv_Error_WithInvalidValues(t *testing.T) {
	testCases := []struct {
		name        string
		key         string
		value       string
		expectedErr error
	}{
		{name: "log level", key: config.EnvLogLevel, value: "loud", expectedErr: config.ErrInvalidLogLevel},
		{name: "observability flag", key: config.EnvObservabilityEnabled, value: "maybe", expectedErr: config.ErrInvalidBool},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			// act
			_, err := config.FromEnv()

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_ParseLogLevel(t *testing.T) {
	level, err := config.ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = config.ParseLogLevel("info+2")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo+2, level)
}

func Test_Load_ReadsEnvFile(t *testing.T) {
	// arrange
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "library.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIBRARY_LOG_LEVEL=error\n"), 0o644))

	// act
	cfg, err := config.Load(envFile)

	// assert
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
}

func Test_Load_EnvironmentWinsOverEnvFile(t *testing.T) {
	// arrange
	clearEnv(t)
	t.Setenv(config.EnvDataDir, "from-env")
	envFile := filepath.Join(t.TempDir(), "library.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIBRARY_DATA_DIR=from-file\n"), 0o644))

	// act
	cfg, err := config.Load(envFile)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DataDir)
}

func Test_Load_IgnoresMissingEnvFile(t *testing.T) {
	// arrange
	clearEnv(t)

	// act
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDataDir, cfg.DataDir)
}

func Test_NewObservabilityProviders_InstallsGlobals(t *testing.T) {
	// arrange
	ctx := context.Background()
	cfg := config.Config{OTLPTraceEndpoint: "localhost:1", OTLPMetricEndpoint: "localhost:1"}

	// act
	providers, err := config.NewObservabilityProviders(ctx, cfg, "library-test")

	// assert
	require.NoError(t, err)
	assert.Same(t, providers.TracerProvider, otel.GetTracerProvider())

	shutdownCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_ = providers.Shutdown(shutdownCtx)
}
