// Package database provides relational database connectivity for CRM Core.
//
// This package manages:
//   - A single shared connection handle with lazy connect/reconnect (Manager)
//   - The one choke point through which all SQL executes (Executor)
//   - Idempotent schema creation and reference-data seeding (InitSchema)
//
// Two engines are supported: SQLite (the default, also used by all tests)
// and MySQL, selected by the database.driver configuration key. The DSN is
// assembled from the configuration record; callers never handle connection
// strings.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - The SQLite database file permissions are set to 0600
//
// Error taxonomy:
//   - *ConnectionError: the handle could not be opened or closed
//   - *SchemaError: schema initialisation failed (fully rolled back)
//   - *QueryError: an individual statement failed (its transaction rolled back)
//
// All three carry the original cause and unwrap with errors.As/errors.Is.
// Failures are logged once at the point of detection and propagated; the
// core never retries.
//
// Usage:
//
//	mgr := database.NewManager(cfg.Database, log.Logger)
//	defer mgr.Disconnect()
//
//	if err := database.InitSchema(ctx, mgr, log.Logger); err != nil {
//	    return err
//	}
//
//	exec := database.NewExecutor(mgr, log.Logger)
//	users := crm.NewUserRepository(exec)
package database
