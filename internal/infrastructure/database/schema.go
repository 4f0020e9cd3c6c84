package database

import (
	"context"
	"fmt"
	"log/slog"
)

// dialect holds the DDL and seed statements for one database engine.
//
// Table statements use CREATE TABLE IF NOT EXISTS and seed statements use
// the engine's insert-or-ignore form keyed on unique names, so the whole
// set is idempotent: running it any number of times converges to the same
// schema and seed state with no duplicates.
type dialect struct {
	tables []string
	seeds  []string
}

// dialectFor returns the schema dialect for a driver name.
func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "sqlite3":
		return sqliteDialect, nil
	case "mysql":
		return mysqlDialect, nil
	default:
		return dialect{}, fmt.Errorf("no schema dialect for driver %q", driver)
	}
}

// InitSchema brings a fresh or partially-initialised database to the
// baseline CRM schema: six tables plus the fixed reference rows (three
// roles, four task statuses).
//
// All DDL and seed inserts execute inside one transaction. Any failure
// rolls the whole initialisation back and returns a *SchemaError; success
// commits once at the end.
//
// Note: MySQL commits DDL implicitly, so full rollback of partially
// created tables is only guaranteed on SQLite. Idempotence makes a re-run
// after a mid-flight failure safe on either engine.
func InitSchema(ctx context.Context, mgr *Manager, log *slog.Logger) error {
	d, err := dialectFor(mgr.Driver())
	if err != nil {
		return &SchemaError{Err: err}
	}

	db, err := mgr.Conn(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &SchemaError{Err: fmt.Errorf("beginning transaction: %w", err)}
	}
	defer tx.Rollback() //nolint:errcheck // rollback is no-op after commit

	for _, stmt := range d.tables {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			log.Error("creating schema table", "error", err)
			return &SchemaError{Err: err}
		}
	}

	for _, stmt := range d.seeds {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			log.Error("seeding reference data", "error", err)
			return &SchemaError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("committing schema initialisation", "error", err)
		return &SchemaError{Err: fmt.Errorf("committing: %w", err)}
	}

	log.Info("database schema initialised", "driver", mgr.Driver())
	return nil
}
