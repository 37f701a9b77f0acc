// Package mimicr provides a step-oriented HTTP workflow engine for Go.
//
// Mimicr is designed for crawl and automation chains where each page fetch
// decides what to fetch next. It keeps the engine deliberately small: steps
// describe single HTTP requests and react to their outcomes, a registry maps
// step names to steps, and a bot executes one named step at a time. The
// chain topology lives entirely in the steps themselves.
//
// # Core Concepts
//
// The mimicr programming model is intentionally small and idiomatic:
//
//  1. Step
//  2. StepManager
//  3. Bot
//  4. StepContext
//  5. Observer
//
// # Step
//
// A Step is a named unit of behavior. It builds one request descriptor and
// reacts to the outcome of sending it:
//
//	type Step interface {
//	    Name() string
//	    OnRequest() *Request
//	    OnSuccess(sc *StepContext)
//	    OnError(sc *StepContext, err error)
//	    OnTimeout(sc *StepContext)
//	}
//
// Exactly one of OnSuccess, OnError, or OnTimeout runs per execution. Steps
// mutate only the context they are handed — most commonly to set the
// next-step hint — and must not keep the context beyond the callback.
//
// # StepManager
//
// The StepManager is a name-keyed registry of steps, populated once at
// startup and read for the rest of the process lifetime. Looking up an
// unregistered name yields ErrStepNotFound; it never panics.
//
// # Bot
//
// The Bot executes a single named step end to end: it resolves the step,
// builds a fresh StepContext around the step's request, sends the request
// exactly once, classifies the result (success, transport error, timeout,
// or status-code rejection), and invokes the matching step callback. Every
// failure is both dispatched to the step and returned to the caller; the
// bot never retries.
//
// Chains are driven by the caller:
//
//	bot := mimicr.NewBot()
//	bot.Steps().Insert(Home{})
//	bot.Steps().Insert(Profile{})
//
//	next := "Home"
//	for next != "" {
//	    sc, err := bot.HandleStep(ctx, next)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    next, _ = sc.NextStep()
//	}
//
// # StepContext
//
// A StepContext records one execution: the request, the response body, the
// elapsed time, and the next-step hint. Body accessors cover raw bytes,
// decoded text, and JSON. Contexts are created fresh per execution and are
// exclusively owned by it, so independent executions may run concurrently
// with no locking beyond the registry's.
//
// # Observer
//
// Observers receive step lifecycle events for logging and metrics. Built-in
// implementations include a log/slog LoggingObserver, in-memory
// BasicMetrics, a Prometheus exporter (pkg/metrics), and a SQLite execution
// journal (NewJournal). Combine them with NewCompositeObserver.
//
// For examples, see the /examples directory or the project README.
package mimicr
