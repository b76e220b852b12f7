// Package observability defines the capability interfaces for tracing and
// structured logging used across searchflow.
//
// Pipeline stages, tools, and providers accept an [observability.Provider]
// and emit spans and log records through it. The slogobs subpackage supplies
// a ready-made observer backed by the standard library's log/slog;
// [NoopProvider] is the default when nothing is configured.
//
// Spans travel through the context: a component that starts a span attaches
// it via [ContextWithSpan], and downstream code retrieves it with
// [SpanFromContext] to add events without needing a direct observer handle.
package observability
