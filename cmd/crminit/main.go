// CRM Core - database bootstrap
//
// crminit connects to the configured database, applies the CRM schema and
// reference seed rows, and exits. It is safe to run repeatedly: the schema
// statements are idempotent and existing data is never touched. Run it once
// before starting any service that uses the data-access layer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coppermill/crm-core/internal/crm"
	"github.com/coppermill/crm-core/internal/infrastructure/config"
	"github.com/coppermill/crm-core/internal/infrastructure/database"
	"github.com/coppermill/crm-core/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting CRM Core bootstrap",
		"version", version,
		"commit", commit,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	mgr := database.NewManager(cfg.Database, log.Logger)
	defer func() {
		if closeErr := mgr.Disconnect(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if err := mgr.Connect(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	log.Info("database connected", "driver", mgr.Driver())

	if err := database.InitSchema(ctx, mgr, log.Logger); err != nil {
		return fmt.Errorf("initialising schema: %w", err)
	}

	// Report what the reference tables hold so a repeated run is easy to
	// eyeball against a first one.
	exec := database.NewExecutor(mgr, log.Logger)
	ref := crm.NewReferenceRepository(exec)

	roles, err := ref.Roles(ctx)
	if err != nil {
		return fmt.Errorf("reading roles: %w", err)
	}
	statuses, err := ref.TaskStatuses(ctx)
	if err != nil {
		return fmt.Errorf("reading task statuses: %w", err)
	}
	log.Info("schema ready",
		"roles", len(roles),
		"task_statuses", len(statuses),
	)

	return nil
}

// getConfigPath returns the configuration file path.
// Uses CRM_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("CRM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
