package crm

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

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
		Path:        filepath.Join(t.TempDir(), "crm-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}, log)
	t.Cleanup(func() { mgr.Disconnect() }) //nolint:errcheck // test teardown

	if err := database.InitSchema(context.Background(), mgr, log); err != nil {
		t.Fatalf("initialising schema: %v", err)
	}

	return database.NewExecutor(mgr, log)
}

// roleID looks up a seeded role by name.
func roleID(t *testing.T, exec *database.Executor, name string) int64 {
	t.Helper()

	row, err := exec.QueryRow(context.Background(),
		"SELECT role_id FROM roles WHERE role_name = ?", name)
	if err != nil {
		t.Fatalf("querying role %s: %v", name, err)
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		t.Fatalf("scanning role %s: %v", name, err)
	}
	return id
}

// statusID looks up a seeded task status by name.
func statusID(t *testing.T, exec *database.Executor, name string) int64 {
	t.Helper()

	row, err := exec.QueryRow(context.Background(),
		"SELECT status_id FROM task_status WHERE status_name = ?", name)
	if err != nil {
		t.Fatalf("querying status %s: %v", name, err)
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		t.Fatalf("scanning status %s: %v", name, err)
	}
	return id
}

// createUser inserts an employee account through the repository and
// returns its id.
func createUser(t *testing.T, exec *database.Executor, username string) int64 {
	t.Helper()

	users := NewUserRepository(exec)
	id, err := users.Create(context.Background(), NewUser{
		Username: username,
		Password: "correct horse battery staple",
		Email:    username + "@example.com",
		RoleID:   roleID(t, exec, "employee"),
	})
	if err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return id
}
