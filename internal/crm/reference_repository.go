package crm

import (
	"context"
	"fmt"

	"github.com/coppermill/crm-core/internal/infrastructure/database"
)

// ReferenceRepository reads and extends the fixed lookup rows: roles and
// task statuses. The create operations are intended for administrative
// callers; the repository itself enforces no such restriction — policy
// belongs to the layer above.
type ReferenceRepository struct {
	exec *database.Executor
}

// NewReferenceRepository creates a reference-data repository over the executor.
func NewReferenceRepository(exec *database.Executor) *ReferenceRepository {
	return &ReferenceRepository{exec: exec}
}

// Roles returns all roles ordered by id.
func (r *ReferenceRepository) Roles(ctx context.Context) ([]Role, error) {
	rows, err := r.exec.Query(ctx,
		"SELECT role_id, role_name, description, created_at, updated_at FROM roles ORDER BY role_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		var description, createdAt, updatedAt string
		if err := rows.Scan(&role.ID, &role.Name, &description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		role.Description = description
		role.CreatedAt = parseStamp(createdAt)
		role.UpdatedAt = parseStamp(updatedAt)
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}

	if roles == nil {
		roles = []Role{}
	}
	return roles, nil
}

// TaskStatuses returns all task statuses ordered by id.
func (r *ReferenceRepository) TaskStatuses(ctx context.Context) ([]TaskStatus, error) {
	rows, err := r.exec.Query(ctx,
		"SELECT status_id, status_name, description, created_at FROM task_status ORDER BY status_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []TaskStatus
	for rows.Next() {
		var s TaskStatus
		var description, createdAt string
		if err := rows.Scan(&s.ID, &s.Name, &description, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning task status: %w", err)
		}
		s.Description = description
		s.CreatedAt = parseStamp(createdAt)
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task statuses: %w", err)
	}

	if statuses == nil {
		statuses = []TaskStatus{}
	}
	return statuses, nil
}

// CreateRole inserts a new role and returns the generated id.
// Returns ErrRoleExists if the name is already taken.
func (r *ReferenceRepository) CreateRole(ctx context.Context, name, description string) (int64, error) {
	_, now := nowStamp()

	id, _, err := r.exec.Exec(ctx,
		"INSERT INTO roles (role_name, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
		name, description, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrRoleExists
		}
		return 0, fmt.Errorf("creating role: %w", err)
	}
	return id, nil
}

// CreateTaskStatus inserts a new task status and returns the generated id.
// Returns ErrStatusExists if the name is already taken.
func (r *ReferenceRepository) CreateTaskStatus(ctx context.Context, name, description string) (int64, error) {
	_, now := nowStamp()

	id, _, err := r.exec.Exec(ctx,
		"INSERT INTO task_status (status_name, description, created_at) VALUES (?, ?, ?)",
		name, description, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrStatusExists
		}
		return 0, fmt.Errorf("creating task status: %w", err)
	}
	return id, nil
}
