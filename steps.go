package mimicr

import (
	"context"
	"time"
)

// Sleep waits for d or until ctx is cancelled, whichever comes first.
//
// Step callbacks run synchronously on the executing goroutine, so a step
// that wants a delay (for example before naming itself as the next step
// again) should use Sleep with the context from StepContext.Context rather
// than time.Sleep:
//
//	func (s Poll) OnSuccess(sc *mimicr.StepContext) {
//	    if err := mimicr.Sleep(sc.Context(), 2*time.Second); err != nil {
//	        return // cancelled, leave no next step
//	    }
//	    sc.SetNextStep("Poll")
//	}
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// StepFuncs adapts plain functions to the Step interface, for steps that
// don't warrant a dedicated type:
//
//	step := mimicr.StepFuncs{
//	    StepName: "RobotsTxt",
//	    Request: func() *mimicr.Request {
//	        return mimicr.NewRequest(http.MethodGet, "https://example.com/robots.txt")
//	    },
//	    Success: func(sc *mimicr.StepContext) { sc.SetNextStep("Home") },
//	}
//
// Nil callbacks are no-ops; Request must be non-nil.
type StepFuncs struct {
	StepName string
	Request  func() *Request
	Success  func(sc *StepContext)
	Error    func(sc *StepContext, err error)
	Timeout  func(sc *StepContext)
}

func (s StepFuncs) Name() string { return s.StepName }

func (s StepFuncs) OnRequest() *Request { return s.Request() }

func (s StepFuncs) OnSuccess(sc *StepContext) {
	if s.Success != nil {
		s.Success(sc)
	}
}

func (s StepFuncs) OnError(sc *StepContext, err error) {
	if s.Error != nil {
		s.Error(sc, err)
	}
}

func (s StepFuncs) OnTimeout(sc *StepContext) {
	if s.Timeout != nil {
		s.Timeout(sc)
	}
}
