package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Executor is the single choke point through which all SQL reaches the
// database, with uniform transaction and error handling.
//
// Statement parameters are always placeholder-bound; repositories never
// interpolate values into SQL text.
type Executor struct {
	mgr *Manager
	log *slog.Logger
}

// NewExecutor creates an Executor backed by the given connection manager.
func NewExecutor(mgr *Manager, log *slog.Logger) *Executor {
	return &Executor{
		mgr: mgr,
		log: log,
	}
}

// Exec runs a write statement in its own transaction.
//
// On success the transaction is committed and the generated id and affected
// row count are returned directly from the driver. On any failure the
// transaction is rolled back, the error logged once, and a *QueryError
// wrapping the cause returned; no partial state is left committed.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (lastID, affected int64, err error) {
	db, err := e.mgr.Conn(ctx)
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		e.log.Error("beginning write transaction", "error", err)
		return 0, 0, &QueryError{Err: fmt.Errorf("beginning transaction: %w", err)}
	}
	defer tx.Rollback() //nolint:errcheck // rollback is no-op after commit

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		e.log.Error("database write failed", "error", err)
		return 0, 0, &QueryError{Err: err}
	}

	// Both are driver-supported on sqlite3 and mysql.
	lastID, _ = res.LastInsertId()   //nolint:errcheck // supported by both drivers
	affected, _ = res.RowsAffected() //nolint:errcheck // supported by both drivers

	if err := tx.Commit(); err != nil {
		e.log.Error("committing write transaction", "error", err)
		return 0, 0, &QueryError{Err: fmt.Errorf("committing: %w", err)}
	}

	return lastID, affected, nil
}

// Query runs a read-only statement and returns the result rows.
// No commit is issued on the read path. The caller owns rows.Close.
func (e *Executor) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db, err := e.mgr.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		e.log.Error("database read failed", "error", err)
		return nil, &QueryError{Err: err}
	}
	return rows, nil
}

// QueryRow runs a read-only statement expected to return at most one row.
// Row-level errors (including sql.ErrNoRows) surface from Scan.
func (e *Executor) QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	db, err := e.mgr.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return db.QueryRowContext(ctx, query, args...), nil
}
