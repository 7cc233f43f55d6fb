package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvDataDir              = "LIBRARY_DATA_DIR"
	EnvLogLevel             = "LIBRARY_LOG_LEVEL"
	EnvObservabilityEnabled = "LIBRARY_OBSERVABILITY_ENABLED"
	EnvOTLPTraceEndpoint    = "LIBRARY_OTLP_TRACE_ENDPOINT"
	EnvOTLPMetricEndpoint   = "LIBRARY_OTLP_METRIC_ENDPOINT"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultDataDir        = "data"
	DefaultOTLPEndpoint   = "localhost:4317"
	DefaultServiceName    = "library-catalog"
	DefaultServiceVersion = "dev"
	DefaultLogLevel       = slog.LevelWarn
)

var (
	// ErrInvalidLogLevel is returned when LIBRARY_LOG_LEVEL is not a slog level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidBool is returned when a boolean variable can't be parsed.
	ErrInvalidBool = errors.New("invalid boolean value")

	// ErrLoadingEnvFileFailed is returned when an existing .env file can't be parsed.
	ErrLoadingEnvFileFailed = errors.New("loading env file failed")
)

// Config holds the settings shared by the library tools.
type Config struct {
	DataDir              string
	LogLevel             slog.Level
	ObservabilityEnabled bool
	OTLPTraceEndpoint    string
	OTLPMetricEndpoint   string
}

// Load reads the given env files (".env" when none are given) into the process environment
// and returns FromEnv. Missing files are ignored. Variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return Config{}, errors.Join(ErrLoadingEnvFileFailed, fmt.Errorf("%s: %w", file, err))
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the environment, applying defaults for unset variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DataDir:            envOrDefault(EnvDataDir, DefaultDataDir),
		LogLevel:           DefaultLogLevel,
		OTLPTraceEndpoint:  envOrDefault(EnvOTLPTraceEndpoint, DefaultOTLPEndpoint),
		OTLPMetricEndpoint: envOrDefault(EnvOTLPMetricEndpoint, DefaultOTLPEndpoint),
	}

	if raw := os.Getenv(EnvLogLevel); raw != "" {
		level, err := ParseLogLevel(raw)
		if err != nil {
			return Config{}, err
		}

		cfg.LogLevel = level
	}

	if raw := os.Getenv(EnvObservabilityEnabled); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, errors.Join(ErrInvalidBool, fmt.Errorf("%s=%q", EnvObservabilityEnabled, raw))
		}

		cfg.ObservabilityEnabled = enabled
	}

	return cfg, nil
}

// ParseLogLevel accepts the slog level names (debug, info, warn, error), case-insensitively,
// with an optional offset such as "info+2".
func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, errors.Join(ErrInvalidLogLevel, fmt.Errorf("%q", raw))
	}

	return level, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
