// Package config reads the runtime configuration of the library tools from an optional .env file
// and the environment, and builds the OpenTelemetry providers when observability is enabled.
package config
