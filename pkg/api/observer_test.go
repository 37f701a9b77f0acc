package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"
)

type countingObserver struct {
	starts, successes, failures, timeouts int
}

func (o *countingObserver) OnStepStart(ctx context.Context, sc *StepContext)            { o.starts++ }
func (o *countingObserver) OnStepSuccess(ctx context.Context, sc *StepContext)          { o.successes++ }
func (o *countingObserver) OnStepError(ctx context.Context, sc *StepContext, err error) { o.failures++ }
func (o *countingObserver) OnStepTimeout(ctx context.Context, sc *StepContext)          { o.timeouts++ }

func observedContext(t *testing.T) *StepContext {
	t.Helper()

	sc, err := NewStepContext(context.Background(), NewRequest(http.MethodGet, "http://test.invalid/"))
	if err != nil {
		t.Fatalf("NewStepContext failed: %v", err)
	}
	sc.CurrentStep = "Observed"
	sc.SetElapsed(40 * time.Millisecond)
	return sc
}

func TestCompositeObserver_FansOut(t *testing.T) {
	ctx := context.Background()
	sc := observedContext(t)

	a := &countingObserver{}
	b := &countingObserver{}
	obs := NewCompositeObserver(a, nil, b)

	obs.OnStepStart(ctx, sc)
	obs.OnStepSuccess(ctx, sc)
	obs.OnStepError(ctx, sc, errors.New("boom"))
	obs.OnStepTimeout(ctx, sc)

	for _, o := range []*countingObserver{a, b} {
		if o.starts != 1 || o.successes != 1 || o.failures != 1 || o.timeouts != 1 {
			t.Fatalf("events not fanned out: %+v", o)
		}
	}
}

func TestNewCompositeObserver_Collapses(t *testing.T) {
	if _, ok := NewCompositeObserver().(NoopObserver); !ok {
		t.Fatal("no observers should collapse to NoopObserver")
	}

	single := &countingObserver{}
	if NewCompositeObserver(single, nil) != Observer(single) {
		t.Fatal("a single observer should be returned unwrapped")
	}
}

func TestBasicMetrics_Snapshot(t *testing.T) {
	ctx := context.Background()
	sc := observedContext(t)

	m := &BasicMetrics{}
	m.OnStepStart(ctx, sc)
	m.OnStepStart(ctx, sc)
	m.OnStepStart(ctx, sc)
	m.OnStepSuccess(ctx, sc)
	m.OnStepError(ctx, sc, errors.New("boom"))
	m.OnStepTimeout(ctx, sc)

	snap := m.Snapshot()
	if snap.Started != 3 {
		t.Fatalf("expected 3 started, got %d", snap.Started)
	}
	if snap.Succeeded != 1 || snap.Failed != 1 || snap.TimedOut != 1 {
		t.Fatalf("unexpected outcome counts: %+v", snap)
	}
	if snap.AvgElapsed != 40*time.Millisecond {
		t.Fatalf("unexpected average elapsed %v", snap.AvgElapsed)
	}
}

func TestLoggingObserver_NilLoggerFallsBack(t *testing.T) {
	obs := NewLoggingObserver(nil)
	lo, ok := obs.(*LoggingObserver)
	if !ok || lo.Logger == nil {
		t.Fatal("nil logger should fall back to slog.Default")
	}

	// Smoke-check every event against a discard logger.
	quiet := NewLoggingObserver(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	sc := observedContext(t)
	quiet.OnStepStart(ctx, sc)
	quiet.OnStepSuccess(ctx, sc)
	quiet.OnStepError(ctx, sc, errors.New("boom"))
	quiet.OnStepTimeout(ctx, sc)
}
