package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/coppermill/crm-core/internal/infrastructure/config"
)

// Database configuration constants.
const (
	// dirPermissions is the permission mode for the SQLite database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the SQLite database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second

	// connMaxIdleTime is how long idle connections are kept open.
	connMaxIdleTime = 30 * time.Minute
)

// Manager owns the single shared connection handle for the process.
//
// It opens the handle lazily, transparently reopens it when a health check
// fails, and hands it out through Conn. No component may hold the handle
// across calls: it must be re-fetched each time so reconnection is observed.
//
// Thread Safety:
//   - All methods are safe for concurrent use; the handle lifecycle is
//     guarded by an internal mutex.
type Manager struct {
	cfg config.DatabaseConfig
	log *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// NewManager creates a connection manager for the configured engine.
// No connection is opened until Connect or Conn is called.
func NewManager(cfg config.DatabaseConfig, log *slog.Logger) *Manager {
	return &Manager{
		cfg: cfg,
		log: log,
	}
}

// Driver returns the configured driver name ("sqlite3" or "mysql").
func (m *Manager) Driver() string {
	return m.cfg.Driver
}

// Connect establishes the database connection if no live handle exists.
//
// A handle that exists but fails its ping is closed and replaced. Failure
// to open is logged once and returned as a *ConnectionError; the manager
// never retries internally.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectLocked(ctx)
}

// Disconnect closes the connection handle if one exists.
// Close failures are returned as a *ConnectionError.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}

	if err := m.db.Close(); err != nil {
		m.log.Error("closing database connection", "error", err)
		return &ConnectionError{Op: "disconnect", Err: err}
	}

	m.db = nil
	m.log.Info("database connection closed")
	return nil
}

// Conn returns a live connection handle, invoking Connect first if the
// handle is absent or stale. This is the only accessor other components
// use; the returned handle must not be cached across calls.
func (m *Manager) Conn(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.connectLocked(ctx); err != nil {
		return nil, err
	}
	return m.db, nil
}

// Active reports whether a live, pingable connection handle exists.
func (m *Manager) Active(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db != nil && m.ping(ctx, m.db) == nil
}

// connectLocked opens the handle if absent or stale. Callers hold m.mu.
func (m *Manager) connectLocked(ctx context.Context) error {
	if m.db != nil {
		if m.ping(ctx, m.db) == nil {
			return nil
		}
		// Stale handle: discard and reopen.
		m.db.Close() //nolint:errcheck // best effort, handle is already broken
		m.db = nil
		m.log.Warn("stale database connection discarded", "driver", m.cfg.Driver)
	}

	db, err := open(m.cfg)
	if err != nil {
		m.log.Error("establishing database connection", "driver", m.cfg.Driver, "error", err)
		return &ConnectionError{Op: "connect", Err: err}
	}

	if err := m.ping(ctx, db); err != nil {
		db.Close() //nolint:errcheck // best effort cleanup on error path
		m.log.Error("verifying database connection", "driver", m.cfg.Driver, "error", err)
		return &ConnectionError{Op: "connect", Err: err}
	}

	m.db = db
	m.log.Info("database connection established", "driver", m.cfg.Driver)
	return nil
}

// ping verifies connectivity with a bounded timeout.
func (m *Manager) ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

// open creates the *sql.DB handle for the configured engine.
func open(cfg config.DatabaseConfig) (*sql.DB, error) {
	driver, dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One shared connection: the core promises a single live handle, and
	// SQLite only supports one writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if driver == "sqlite3" {
		// Set file permissions (owner read/write only).
		// Ignore error - file might not exist yet on first run.
		_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // first run creates file later
	}

	return db, nil
}

// buildDSN assembles the driver-specific connection string from the
// configuration record. Callers never see or supply raw DSNs.
func buildDSN(cfg config.DatabaseConfig) (driver, dsn string, err error) {
	switch cfg.Driver {
	case "sqlite3":
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return "", "", fmt.Errorf("creating database directory: %w", err)
		}

		// See: https://github.com/mattn/go-sqlite3#connection-string
		dsn = fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
			cfg.Path,
			cfg.BusyTimeout*msPerSecond,
		)
		if cfg.WALMode {
			dsn += "&_journal_mode=WAL&_synchronous=NORMAL"
		}
		return "sqlite3", dsn, nil

	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
		)
		return "mysql", dsn, nil

	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
