package api

// Step is a named unit of behavior: it produces one request descriptor and
// reacts to the outcome of sending it. Exactly one of OnSuccess, OnError,
// or OnTimeout runs per execution.
//
// Implementations should treat themselves as immutable and do all mutation
// through the supplied StepContext (most commonly SetNextStep). A step must
// not keep a reference to the context beyond the callback's return: the
// context belongs to the caller once HandleStep returns. Callbacks run
// synchronously; long blocking work inside them blocks the execution, so
// steps that need a delay should use a cooperative wait on
// StepContext.Context instead of sleeping.
type Step interface {
	// Name is the stable identifier used as the registry key.
	Name() string

	// OnRequest builds the request to send. It must not block or
	// perform I/O.
	OnRequest() *Request

	// OnSuccess runs when a response arrived and its status satisfied
	// the acceptance rule.
	OnSuccess(sc *StepContext)

	// OnError runs on a transport failure or a status-code rejection,
	// with the classified error.
	OnError(sc *StepContext, err error)

	// OnTimeout runs when the transport reports a deadline exceeded.
	// Kept separate from OnError so timeout policy needs no error
	// inspection.
	OnTimeout(sc *StepContext)
}
