package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the engine for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be
// done asynchronously so as not to delay step execution. Observer calls are
// in addition to, never instead of, the owning step's own callbacks.
type Observer interface {
	// OnStepStart is called after the context is built, before the
	// request is sent.
	OnStepStart(ctx context.Context, sc *StepContext)

	// OnStepSuccess is called when the response satisfied the
	// acceptance rule, after the step's OnSuccess returned.
	OnStepSuccess(ctx context.Context, sc *StepContext)

	// OnStepError is called on a transport failure or status rejection,
	// after the step's OnError returned.
	OnStepError(ctx context.Context, sc *StepContext, err error)

	// OnStepTimeout is called when the exchange timed out, after the
	// step's OnTimeout returned.
	OnStepTimeout(ctx context.Context, sc *StepContext)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnStepStart(ctx context.Context, sc *StepContext)            {}
func (NoopObserver) OnStepSuccess(ctx context.Context, sc *StepContext)          {}
func (NoopObserver) OnStepError(ctx context.Context, sc *StepContext, err error) {}
func (NoopObserver) OnStepTimeout(ctx context.Context, sc *StepContext)          {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnStepStart(ctx context.Context, sc *StepContext) {
	for _, o := range c.observers {
		o.OnStepStart(ctx, sc)
	}
}

func (c *CompositeObserver) OnStepSuccess(ctx context.Context, sc *StepContext) {
	for _, o := range c.observers {
		o.OnStepSuccess(ctx, sc)
	}
}

func (c *CompositeObserver) OnStepError(ctx context.Context, sc *StepContext, err error) {
	for _, o := range c.observers {
		o.OnStepError(ctx, sc, err)
	}
}

func (c *CompositeObserver) OnStepTimeout(ctx context.Context, sc *StepContext) {
	for _, o := range c.observers {
		o.OnStepTimeout(ctx, sc)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs step lifecycle events
// using the provided slog.Logger. If logger is nil, slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnStepStart(ctx context.Context, sc *StepContext) {
	o.Logger.DebugContext(ctx, "step_start",
		slog.String("step", sc.CurrentStep),
		slog.String("execution_id", sc.ID),
		slog.String("url", sc.Request.URL),
	)
}

func (o *LoggingObserver) OnStepSuccess(ctx context.Context, sc *StepContext) {
	next, _ := sc.NextStep()
	o.Logger.InfoContext(ctx, "step_success",
		slog.String("step", sc.CurrentStep),
		slog.String("execution_id", sc.ID),
		slog.Int("status_code", sc.StatusCode()),
		slog.Duration("elapsed", sc.Elapsed()),
		slog.String("next_step", next),
	)
}

func (o *LoggingObserver) OnStepError(ctx context.Context, sc *StepContext, err error) {
	o.Logger.ErrorContext(ctx, "step_error",
		slog.String("step", sc.CurrentStep),
		slog.String("execution_id", sc.ID),
		slog.Int("status_code", sc.StatusCode()),
		slog.Duration("elapsed", sc.Elapsed()),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnStepTimeout(ctx context.Context, sc *StepContext) {
	o.Logger.WarnContext(ctx, "step_timeout",
		slog.String("step", sc.CurrentStep),
		slog.String("execution_id", sc.ID),
		slog.Duration("elapsed", sc.Elapsed()),
	)
}

// BasicMetrics collects simple counters and aggregate elapsed times.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	started      atomic.Int64
	succeeded    atomic.Int64
	failed       atomic.Int64
	timedOut     atomic.Int64
	totalElapsed atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Started   int64
	Succeeded int64
	Failed    int64
	TimedOut  int64

	AvgElapsed time.Duration
}

func (m *BasicMetrics) OnStepStart(ctx context.Context, sc *StepContext) {
	m.started.Add(1)
}

func (m *BasicMetrics) OnStepSuccess(ctx context.Context, sc *StepContext) {
	m.succeeded.Add(1)
	m.totalElapsed.Add(int64(sc.Elapsed()))
}

func (m *BasicMetrics) OnStepError(ctx context.Context, sc *StepContext, err error) {
	m.failed.Add(1)
	m.totalElapsed.Add(int64(sc.Elapsed()))
}

func (m *BasicMetrics) OnStepTimeout(ctx context.Context, sc *StepContext) {
	m.timedOut.Add(1)
	m.totalElapsed.Add(int64(sc.Elapsed()))
}

// Snapshot returns a snapshot of the current metrics. The average elapsed
// time is computed over every finished execution, whatever its outcome.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	succeeded := m.succeeded.Load()
	failed := m.failed.Load()
	timedOut := m.timedOut.Load()

	finished := succeeded + failed + timedOut
	var avg time.Duration
	if finished > 0 {
		avg = time.Duration(m.totalElapsed.Load() / finished)
	}

	return BasicMetricsSnapshot{
		Started:    m.started.Load(),
		Succeeded:  succeeded,
		Failed:     failed,
		TimedOut:   timedOut,
		AvgElapsed: avg,
	}
}
