package database

import "fmt"

// ConnectionError indicates the connection handle could not be established
// or cleanly closed. It is always propagated to the caller, never retried.
type ConnectionError struct {
	// Op is the lifecycle operation that failed: "connect" or "disconnect".
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SchemaError indicates a DDL or seed step failed during schema
// initialisation. The whole initialisation transaction has been rolled back.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("initialising schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// QueryError indicates an individual statement failed. The statement's
// transaction has been rolled back; no partial state was committed.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("executing query: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
