package auth

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/coppermill/crm-core/internal/infrastructure/config"
	"github.com/coppermill/crm-core/internal/infrastructure/database"
)

// testExecutor creates an executor over a temporary SQLite database with
// the full CRM schema applied.
func testExecutor(t *testing.T) *database.Executor {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := database.NewManager(config.DatabaseConfig{
		Driver:      "sqlite3",
		Path:        filepath.Join(t.TempDir(), "auth-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}, log)
	t.Cleanup(func() { mgr.Disconnect() }) //nolint:errcheck // test teardown

	if err := database.InitSchema(context.Background(), mgr, log); err != nil {
		t.Fatalf("initialising schema: %v", err)
	}

	return database.NewExecutor(mgr, log)
}

// seedUser inserts a bare user row and returns its id. Sessions reference
// users, so most tests need at least one.
func seedUser(t *testing.T, exec *database.Executor, username string) int64 {
	t.Helper()

	hash, err := HashPassword("test-password")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	id, _, err := exec.Exec(context.Background(),
		`INSERT INTO users (username, password_hash, email, role_id, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, (SELECT role_id FROM roles WHERE role_name = 'employee'), 1, ?, ?)`,
		username, hash, username+"@example.com", now, now,
	)
	if err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return id
}
