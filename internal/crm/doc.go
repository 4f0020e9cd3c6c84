// Package crm provides the entity repositories of the CRM data-access core:
// users, contacts, tasks and the reference data they hang off (roles, task
// statuses).
//
// Every repository is built on the database.Executor only; none issues SQL
// against the connection manager directly. Results decode into the typed
// structs in this package, with human-readable names (role, status,
// assignee) joined in for display convenience alongside the foreign keys.
//
// Lookups signal absence with per-entity sentinel errors (ErrUserNotFound
// and friends) checkable via errors.Is; callers must treat these as "no
// such record", not as failures. The repositories enforce no authorization:
// role strings are stored and returned, policy belongs to the caller.
package crm
