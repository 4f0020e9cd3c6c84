package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coppermill/crm-core/internal/infrastructure/database"
)

// NewTask carries the attributes for creating a task. Assignee, assigner,
// due date and status are required; Priority defaults to medium when empty.
type NewTask struct {
	Title       string
	Description string
	AssignedTo  int64
	AssignedBy  int64
	DueDate     time.Time
	StatusID    int64
	Priority    Priority
}

// TaskRepository provides CRUD access to tasks.
type TaskRepository struct {
	exec *database.Executor
}

// NewTaskRepository creates a task repository over the executor.
func NewTaskRepository(exec *database.Executor) *TaskRepository {
	return &TaskRepository{exec: exec}
}

// Create inserts a new task and returns the generated id.
func (r *TaskRepository) Create(ctx context.Context, nt NewTask) (int64, error) {
	priority := nt.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, nt.Priority)
	}

	_, now := nowStamp()
	id, _, err := r.exec.Exec(ctx,
		`INSERT INTO tasks (title, description, assigned_to, assigned_by, due_date, status_id, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nt.Title, nullString(nt.Description),
		nt.AssignedTo, nt.AssignedBy,
		nt.DueDate.Format(dueDateFormat),
		nt.StatusID, string(priority),
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("creating task: %w", err)
	}

	return id, nil
}

// GetByID retrieves a task by id, with the status name and both party
// display names joined in. Returns ErrTaskNotFound for an unknown id.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*Task, error) {
	row, err := r.exec.QueryRow(ctx,
		`SELECT t.task_id, t.title, t.description, t.assigned_to, t.assigned_by,
		        t.due_date, t.status_id, t.priority, t.created_at, t.updated_at,
		        ts.status_name, u1.username, u2.username
		 FROM tasks t
		 JOIN task_status ts ON t.status_id = ts.status_id
		 JOIN users u1 ON t.assigned_to = u1.user_id
		 JOIN users u2 ON t.assigned_by = u2.user_id
		 WHERE t.task_id = ?`, id)
	if err != nil {
		return nil, err
	}

	var t Task
	var description sql.NullString
	var dueDate, createdAt, updatedAt, priority string

	err = row.Scan(&t.ID, &t.Title, &description, &t.AssignedTo, &t.AssignedBy,
		&dueDate, &t.StatusID, &priority, &createdAt, &updatedAt,
		&t.StatusName, &t.AssignedToName, &t.AssignedByName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Description = description.String
	t.Priority = Priority(priority)
	t.DueDate, _ = time.Parse(dueDateFormat, dueDate) //nolint:errcheck // format is controlled
	t.CreatedAt = parseStamp(createdAt)
	t.UpdatedAt = parseStamp(updatedAt)

	return &t, nil
}

// ListByUser returns a user's tasks ordered by ascending due date.
//
// With asManager false the result is the tasks assigned TO the user, each
// carrying the assigner's display name. With asManager true it is the
// tasks the user assigned to others, each carrying the assignee's display
// name instead.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64, asManager bool) ([]Task, error) {
	var query string
	if asManager {
		query = `SELECT t.task_id, t.title, t.description, t.assigned_to, t.assigned_by,
		                t.due_date, t.status_id, t.priority, t.created_at, t.updated_at,
		                ts.status_name, u.username
		         FROM tasks t
		         JOIN task_status ts ON t.status_id = ts.status_id
		         JOIN users u ON t.assigned_to = u.user_id
		         WHERE t.assigned_by = ?
		         ORDER BY t.due_date ASC`
	} else {
		query = `SELECT t.task_id, t.title, t.description, t.assigned_to, t.assigned_by,
		                t.due_date, t.status_id, t.priority, t.created_at, t.updated_at,
		                ts.status_name, u.username
		         FROM tasks t
		         JOIN task_status ts ON t.status_id = ts.status_id
		         JOIN users u ON t.assigned_by = u.user_id
		         WHERE t.assigned_to = ?
		         ORDER BY t.due_date ASC`
	}

	rows, err := r.exec.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var description sql.NullString
		var dueDate, createdAt, updatedAt, priority, partyName string

		err := rows.Scan(&t.ID, &t.Title, &description, &t.AssignedTo, &t.AssignedBy,
			&dueDate, &t.StatusID, &priority, &createdAt, &updatedAt,
			&t.StatusName, &partyName)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		t.Description = description.String
		t.Priority = Priority(priority)
		t.DueDate, _ = time.Parse(dueDateFormat, dueDate) //nolint:errcheck // format is controlled
		t.CreatedAt = parseStamp(createdAt)
		t.UpdatedAt = parseStamp(updatedAt)
		if asManager {
			t.AssignedToName = partyName
		} else {
			t.AssignedByName = partyName
		}

		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// UpdateStatus sets a task's status and refreshes the update timestamp.
// No transition graph is enforced. Returns ErrTaskNotFound if the id does
// not exist.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID, statusID int64) error {
	_, stamp := nowStamp()

	_, affected, err := r.exec.Exec(ctx,
		"UPDATE tasks SET status_id = ?, updated_at = ? WHERE task_id = ?",
		statusID, stamp, taskID)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
