package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"slices"
	"time"

	"github.com/netr/mimicr/pkg/api"
)

// Bot executes registered steps one at a time. It owns the step registry
// and an observer; each execution gets its own StepContext, so concurrent
// HandleStep calls are safe once the registry is populated.
type Bot struct {
	steps    *api.StepManager
	observer api.Observer
}

// Config describes how to construct a Bot.
// Only used inside this package; external callers use the helper functions.
type Config struct {
	Steps    *api.StepManager
	Observer api.Observer
}

// NewBot returns a Bot with an empty registry and no observer.
func NewBot() *Bot {
	return NewBotWithConfig(Config{})
}

// NewBotWithConfig creates a Bot using the given configuration. Nil fields
// fall back to an empty registry and a no-op observer.
func NewBotWithConfig(cfg Config) *Bot {
	steps := cfg.Steps
	if steps == nil {
		steps = api.NewStepManager()
	}
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	return &Bot{steps: steps, observer: obs}
}

// Steps returns the bot's step registry.
func (b *Bot) Steps() *api.StepManager {
	return b.steps
}

// HandleStep executes the named step end to end: it resolves the step,
// builds a fresh context around the step's request, sends the request once,
// classifies the outcome, and invokes exactly one of the step's callbacks.
//
// Every failure is both dispatched to the step and returned to the caller;
// nothing is swallowed and nothing is retried. The context is returned
// whenever it exists, including on failure, so recovery hints set in
// OnError or OnTimeout remain visible to the caller.
func (b *Bot) HandleStep(ctx context.Context, stepName string) (*api.StepContext, error) {
	step, err := b.steps.Get(stepName)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	sc, err := api.NewStepContext(ctx, step.OnRequest())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrTransport, err)
	}
	sc.CurrentStep = stepName

	b.observer.OnStepStart(ctx, sc)

	hr, err := sc.TakeRequest()
	if err != nil {
		return sc, err
	}

	res, err := sc.Requester.Do(hr)
	if err != nil {
		// Elapsed time is recorded before any callback runs so timeout
		// and error handlers can read it.
		sc.SetElapsed(time.Since(start))

		if isTimeout(err) {
			terr := fmt.Errorf("%w: %v", api.ErrTimeout, err)
			step.OnTimeout(sc)
			b.observer.OnStepTimeout(ctx, sc)
			return sc, terr
		}

		terr := fmt.Errorf("%w: %v", api.ErrTransport, err)
		step.OnError(sc, terr)
		b.observer.OnStepError(ctx, sc, terr)
		return sc, terr
	}

	body, readErr := io.ReadAll(res.Body)
	res.Body.Close()
	sc.SetElapsed(time.Since(start))

	if readErr != nil {
		terr := fmt.Errorf("%w: read body: %v", api.ErrTransport, readErr)
		step.OnError(sc, terr)
		b.observer.OnStepError(ctx, sc, terr)
		return sc, terr
	}

	sc.SetResponse(res.StatusCode, body, charsetOf(res.Header.Get("Content-Type")))

	if !accepted(res.StatusCode, sc.StatusCodes) {
		serr := &api.StatusCodeError{Code: res.StatusCode, Expected: sc.StatusCodes}
		step.OnError(sc, serr)
		b.observer.OnStepError(ctx, sc, serr)
		return sc, serr
	}

	step.OnSuccess(sc)
	b.observer.OnStepSuccess(ctx, sc)

	// The body has served its purpose once OnSuccess returns; callers
	// read the next-step hint, not the response.
	sc.ClearResponse()
	return sc, nil
}

// accepted applies the acceptance rule: membership in the explicit list
// when one was given, the conventional 2xx range otherwise.
func accepted(code int, allowed []int) bool {
	if allowed == nil {
		return code >= 200 && code < 300
	}
	return slices.Contains(allowed, code)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
