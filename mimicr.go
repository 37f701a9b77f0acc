package mimicr

import (
	"database/sql"
	"log/slog"

	"github.com/netr/mimicr/internal/engine"
	"github.com/netr/mimicr/internal/journal"
	"github.com/netr/mimicr/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Bot                  = engine.Bot
	Step                 = api.Step
	StepManager          = api.StepManager
	StepContext          = api.StepContext
	Request              = api.Request
	HTTPRequester        = api.HTTPRequester
	RequesterSettings    = api.RequesterSettings
	StatusCodeError      = api.StatusCodeError
	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	CompositeObserver    = api.CompositeObserver
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	Journal              = journal.Journal
	JournalEntry         = journal.Entry
)

// Re-export common constructors and helpers.

var (
	NewRequest           = api.NewRequest
	ParseHeaders         = api.ParseHeaders
	NewStepManager       = api.NewStepManager
	NewHTTPRequester     = api.NewHTTPRequester
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
)

// Re-export the error taxonomy for convenience.

var (
	ErrStepNotFound     = api.ErrStepNotFound
	ErrTransport        = api.ErrTransport
	ErrTimeout          = api.ErrTimeout
	ErrUnexpectedStatus = api.ErrUnexpectedStatus
	ErrNoResponse       = api.ErrNoResponse
	ErrRequestConsumed  = api.ErrRequestConsumed
)

// Bot constructors
// These wrap the internal/engine package so external callers
// never need to import internal packages.

// NewBot returns a Bot with an empty step registry and no observer.
func NewBot() *Bot {
	return engine.NewBot()
}

// NewBotWithObserver returns a Bot whose step executions are reported to the
// given Observer.
func NewBotWithObserver(obs Observer) *Bot {
	return engine.NewBotWithConfig(engine.Config{Observer: obs})
}

// NewBotWithSteps returns a Bot sharing the given step registry. Useful when
// several bots should dispatch over one set of steps.
func NewBotWithSteps(steps *StepManager, obs Observer) *Bot {
	return engine.NewBotWithConfig(engine.Config{Steps: steps, Observer: obs})
}

// NewJournal returns an Observer that records finished step executions in a
// SQLite database. The caller owns the *sql.DB and must import a SQLite
// driver such as modernc.org/sqlite. Pass a nil logger to report write
// failures through slog.Default.
func NewJournal(db *sql.DB, logger *slog.Logger) (*Journal, error) {
	return journal.New(db, logger)
}
