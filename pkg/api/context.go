package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// StepContext records one step execution: the request that was built, the
// response that came back, how long the exchange took, and the next-step
// hint left behind by the step's callbacks.
//
// A StepContext is created fresh per execution and is owned by exactly one
// in-flight execution; it is handed to the step's callback and then returned
// to the caller. It is not safe for concurrent use.
type StepContext struct {
	// ID uniquely identifies this execution.
	ID string

	// Request is the descriptor the context was built around. Each
	// context owns its own copy.
	Request *Request

	// CurrentStep is the name of the step being executed.
	CurrentStep string

	// Requester is the HTTP requester configured from the descriptor's
	// proxy, user-agent, compression, and timeout settings.
	Requester *HTTPRequester

	// StatusCodes is the accepted-status-code set copied from the
	// descriptor. Nil means the default 2xx rule.
	StatusCodes []int

	ctx         context.Context
	handle      *http.Request
	response    []byte
	hasResponse bool
	statusCode  int
	charset     string
	nextStep    string
	hasNext     bool
	elapsed     time.Duration
}

// NewStepContext builds a context around a request descriptor: a fresh
// HTTPRequester is configured from the descriptor's transport settings and
// the outgoing request handle is built, ready to be sent exactly once.
func NewStepContext(ctx context.Context, req *Request) (*StepContext, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	requester := NewHTTPRequester()
	requester.Configure(req)

	handle, err := requester.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	// An empty non-nil list rejects every status, so emptiness must survive
	// the copy.
	var codes []int
	if req.StatusCodes != nil {
		codes = make([]int, len(req.StatusCodes))
		copy(codes, req.StatusCodes)
	}

	return &StepContext{
		ID:          uuid.NewString(),
		Request:     req.Clone(),
		Requester:   requester,
		StatusCodes: codes,
		ctx:         ctx,
		handle:      handle,
	}, nil
}

// Context returns the context.Context governing this execution. Step
// callbacks can use it for cooperative waits (see mimicr.Sleep).
func (sc *StepContext) Context() context.Context {
	return sc.ctx
}

// TakeRequest removes and returns the outgoing request handle. It fails
// with ErrRequestConsumed on the second call: a context sends at most once.
func (sc *StepContext) TakeRequest() (*http.Request, error) {
	if sc.handle == nil {
		return nil, ErrRequestConsumed
	}
	hr := sc.handle
	sc.handle = nil
	return hr, nil
}

// SetResponse stores the response status, body, and charset hint taken from
// the Content-Type header.
func (sc *StepContext) SetResponse(statusCode int, body []byte, charset string) {
	sc.statusCode = statusCode
	sc.response = body
	sc.hasResponse = true
	sc.charset = charset
}

// ClearResponse drops the buffered response body. The status code and
// timing survive.
func (sc *StepContext) ClearResponse() {
	sc.response = nil
	sc.hasResponse = false
}

// StatusCode returns the response status code, or 0 if no response was
// received.
func (sc *StepContext) StatusCode() int {
	return sc.statusCode
}

// BodyBytes returns a copy of the response body, or nil if no response is
// buffered. Repeated calls are safe.
func (sc *StepContext) BodyBytes() []byte {
	if !sc.hasResponse {
		return nil
	}
	return append([]byte(nil), sc.response...)
}

// BodyText decodes the response body to text. The charset hint from the
// response is honored when it names a known encoding; otherwise UTF-8 is
// assumed. Returns the empty string when no response is buffered.
func (sc *StepContext) BodyText() string {
	if !sc.hasResponse {
		return ""
	}

	var enc encoding.Encoding = unicode.UTF8
	if sc.charset != "" {
		if e, err := htmlindex.Get(sc.charset); err == nil {
			enc = e
		}
	}

	decoded, err := enc.NewDecoder().Bytes(sc.response)
	if err != nil {
		return string(sc.response)
	}
	return string(decoded)
}

// BodyJSON unmarshals the response body into v. It fails with ErrNoResponse
// when no response is buffered, and with a decode error when the bytes do
// not fit v. A decode failure here is local: it does not change the outcome
// of the execution that produced the body.
func (sc *StepContext) BodyJSON(v any) error {
	if !sc.hasResponse {
		return ErrNoResponse
	}
	if err := json.Unmarshal(sc.response, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// SetNextStep records the step the caller should execute next. Only step
// callbacks set this; the engine never does.
func (sc *StepContext) SetNextStep(name string) {
	sc.nextStep = name
	sc.hasNext = true
}

// ClearNextStep removes the next-step hint.
func (sc *StepContext) ClearNextStep() {
	sc.nextStep = ""
	sc.hasNext = false
}

// NextStep returns the next-step hint, if one was set.
func (sc *StepContext) NextStep() (string, bool) {
	return sc.nextStep, sc.hasNext
}

// Elapsed returns how long the exchange took. It is recorded before any
// step callback runs, on every outcome path.
func (sc *StepContext) Elapsed() time.Duration {
	return sc.elapsed
}

// SetElapsed records the exchange duration.
func (sc *StepContext) SetElapsed(d time.Duration) {
	sc.elapsed = d
}
