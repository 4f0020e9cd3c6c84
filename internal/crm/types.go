package crm

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is one of the allowed levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Role is a fixed authorisation tier referenced by users. The core stores
// and returns role names; it never enforces them.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskStatus is a reference row describing one task lifecycle state.
// No transition graph is enforced: any status may follow any other.
type TaskStatus struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is an account in the CRM. RoleName is denormalised from the joined
// roles row for display.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Email        string    `json:"email"`
	RoleID       int64     `json:"role_id"`
	RoleName     string    `json:"role_name"`
	ManagerID    *int64    `json:"manager_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Contact is a customer record, optionally assigned to a user.
type Contact struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	AssignedTo *int64    `json:"assigned_to,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Task is a unit of work assigned by one user to another. StatusName and
// the two party names are denormalised for display; which party names are
// populated depends on the query that produced the record.
type Task struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	AssignedTo     int64     `json:"assigned_to"`
	AssignedToName string    `json:"assigned_to_name,omitempty"`
	AssignedBy     int64     `json:"assigned_by"`
	AssignedByName string    `json:"assigned_by_name,omitempty"`
	DueDate        time.Time `json:"due_date"`
	StatusID       int64     `json:"status_id"`
	StatusName     string    `json:"status_name,omitempty"`
	Priority       Priority  `json:"priority"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Sentinel errors for repository operations.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserExists      = errors.New("username or email already exists")
	ErrRoleExists      = errors.New("role name already exists")
	ErrStatusExists    = errors.New("status name already exists")
	ErrInvalidPriority = errors.New("invalid task priority")
)

// dueDateFormat is the storage form of task due dates.
const dueDateFormat = "2006-01-02"

// nowStamp returns the current UTC time and its storage form. Nanosecond
// precision keeps successive updates of the same row strictly ordered.
func nowStamp() (time.Time, string) {
	t := time.Now().UTC()
	return t, t.Format(time.RFC3339Nano)
}

// parseStamp decodes a stored timestamp. The format is controlled by this
// package (and the schema seed defaults), so parse errors are ignored.
func parseStamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s) //nolint:errcheck // format is controlled
	return t
}

// Helper functions shared by the repositories.

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks whether an error is a unique-constraint
// violation on either supported engine.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") // mysql
}
