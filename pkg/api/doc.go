// Package api contains the core building blocks of the mimicr step engine.
// It provides the primitives for describing HTTP requests, implementing
// steps, holding per-execution state, and observing engine behavior.
//
// Most users interact with the higher-level mimicr package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom integrations, or contributors extending the
// engine itself.
//
// # Requests
//
// A Request is the immutable descriptor of a single HTTP call: method, URL,
// headers, body, timeout, proxy, compression, and the status codes that
// count as success. Requests are built by a step's OnRequest using the
// fluent With* methods and are cloned into each execution context, so no
// two executions share mutable request state.
//
// # Steps
//
// A Step is a named unit of behavior. It produces one Request and reacts to
// the outcome of sending it through three callbacks: OnSuccess, OnError,
// and OnTimeout. Steps are registered in a StepManager and looked up by
// name; multiple registry entries may reference the same Step value, so
// implementations must confine their side effects to the StepContext they
// are handed.
//
// # Execution Contexts
//
// A StepContext records one execution: the request that was sent, the
// response body, the elapsed time, and the next-step hint a callback may
// leave for the caller. Contexts are created fresh per execution, owned by
// exactly one in-flight execution, and returned to the caller when the
// execution finishes.
//
// # Observability
//
// The Observer interface reports step lifecycle events. Ready-made
// implementations cover structured logging (LoggingObserver, built on
// log/slog) and in-memory counters (BasicMetrics); NewCompositeObserver
// combines several observers into one. The pkg/metrics package adds a
// Prometheus-backed implementation.
package api
