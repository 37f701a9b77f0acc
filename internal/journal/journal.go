// Package journal persists a record of finished step executions to SQLite.
//
// The journal is an observability sink, not a state store: it never restores
// an execution context, it only remembers what happened. It attaches to a
// bot as an api.Observer.
package journal

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/netr/mimicr/pkg/api"
)

// Outcome values recorded per execution.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Entry is one journaled step execution.
type Entry struct {
	ExecutionID string
	Step        string
	Outcome     string
	StatusCode  int
	Elapsed     time.Duration
	Error       string
	NextStep    string
	CreatedAt   time.Time
}

// Journal is an api.Observer backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type Journal struct {
	api.NoopObserver

	db     *sql.DB
	logger *slog.Logger
}

// Ensure Journal implements api.Observer.
var _ api.Observer = (*Journal)(nil)

// New initializes the required schema in the given database and returns a
// new Journal. Write failures are logged to the given logger (slog.Default
// when nil) rather than interrupting step execution.
func New(db *sql.DB, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Journal{db: db, logger: logger}
	if err := j.initSchema(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Journal) initSchema() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS step_executions (
			execution_id TEXT PRIMARY KEY,
			step TEXT NOT NULL,
			outcome TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			error TEXT,
			next_step TEXT,
			created_at TEXT NOT NULL
		);`,
	)
	return err
}

func (j *Journal) OnStepSuccess(ctx context.Context, sc *api.StepContext) {
	j.record(ctx, sc, OutcomeSuccess, "")
}

func (j *Journal) OnStepError(ctx context.Context, sc *api.StepContext, err error) {
	j.record(ctx, sc, OutcomeError, err.Error())
}

func (j *Journal) OnStepTimeout(ctx context.Context, sc *api.StepContext) {
	j.record(ctx, sc, OutcomeTimeout, "")
}

func (j *Journal) record(ctx context.Context, sc *api.StepContext, outcome, errText string) {
	next, _ := sc.NextStep()

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO step_executions (execution_id, step, outcome, status_code, elapsed_ms, error, next_step, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID,
		sc.CurrentStep,
		outcome,
		sc.StatusCode(),
		sc.Elapsed().Milliseconds(),
		errText,
		next,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		j.logger.ErrorContext(ctx, "journal_write_failed",
			slog.String("step", sc.CurrentStep),
			slog.String("execution_id", sc.ID),
			slog.Any("error", err),
		)
	}
}

// Recent returns up to limit journaled executions, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT execution_id, step, outcome, status_code, elapsed_ms, error, next_step, created_at
		FROM step_executions
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var elapsedMs int64
		var createdAt string
		if err := rows.Scan(&e.ExecutionID, &e.Step, &e.Outcome, &e.StatusCode, &elapsedMs, &e.Error, &e.NextStep, &createdAt); err != nil {
			return nil, err
		}
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
