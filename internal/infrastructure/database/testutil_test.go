package database

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/coppermill/crm-core/internal/infrastructure/config"
)

// testManager creates a Manager backed by a temporary SQLite database.
// The file lives in t.TempDir and is removed when the test completes.
func testManager(t *testing.T) *Manager {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:      "sqlite3",
		Path:        filepath.Join(t.TempDir(), "crm-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}

	m := NewManager(cfg, testLogger())
	t.Cleanup(func() { m.Disconnect() }) //nolint:errcheck // test teardown
	return m
}

// testLogger returns a logger that discards all output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
