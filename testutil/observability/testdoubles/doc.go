// Package testdoubles provides spies for the library observability interfaces.
//
// The spies capture logging, metrics and tracing calls so tests can assert on the
// instrumentation of the engine and the flat-file store without a real backend.
package testdoubles
