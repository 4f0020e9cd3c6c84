package crm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dueDateFormat, s)
	if err != nil {
		t.Fatalf("parsing date %s: %v", s, err)
	}
	return d
}

func TestTaskCreateAndGet(t *testing.T) {
	exec := testExecutor(t)
	tasks := NewTaskRepository(exec)
	ctx := context.Background()

	managerID := createUser(t, exec, "manager")
	workerID := createUser(t, exec, "worker")

	id, err := tasks.Create(ctx, NewTask{
		Title:       "Call the client",
		Description: "Quarterly review call",
		AssignedTo:  workerID,
		AssignedBy:  managerID,
		DueDate:     date(t, "2026-09-15"),
		StatusID:    statusID(t, exec, "not_started"),
		Priority:    PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive generated id, got %d", id)
	}

	task, err := tasks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if task.Title != "Call the client" || task.Description != "Quarterly review call" {
		t.Errorf("unexpected task fields: %+v", task)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %s", task.Priority)
	}
	if !task.DueDate.Equal(date(t, "2026-09-15")) {
		t.Errorf("unexpected due date: %v", task.DueDate)
	}
	if task.StatusName != "not_started" {
		t.Errorf("expected joined status name, got %q", task.StatusName)
	}
	if task.AssignedToName != "worker" || task.AssignedByName != "manager" {
		t.Errorf("expected both party names joined in, got to=%q by=%q",
			task.AssignedToName, task.AssignedByName)
	}
}

func TestTaskDefaultPriority(t *testing.T) {
	exec := testExecutor(t)
	tasks := NewTaskRepository(exec)
	ctx := context.Background()

	userID := createUser(t, exec, "solo")

	id, err := tasks.Create(ctx, NewTask{
		Title:      "Untriaged work",
		AssignedTo: userID,
		AssignedBy: userID,
		DueDate:    date(t, "2026-10-01"),
		StatusID:   statusID(t, exec, "not_started"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	task, err := tasks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("expected default medium priority, got %s", task.Priority)
	}
}

func TestTaskInvalidPriority(t *testing.T) {
	exec := testExecutor(t)
	tasks := NewTaskRepository(exec)

	userID := createUser(t, exec, "solo")

	_, err := tasks.Create(context.Background(), NewTask{
		Title:      "Bad priority",
		AssignedTo: userID,
		AssignedBy: userID,
		DueDate:    date(t, "2026-10-01"),
		StatusID:   statusID(t, exec, "not_started"),
		Priority:   Priority("urgent"),
	})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskGetNotFound(t *testing.T) {
	exec := testExecutor(t)
	tasks := NewTaskRepository(exec)

	if _, err := tasks.GetByID(context.Background(), 99999); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskListByUserDirection(t *testing.T) {
	exec := testExecutor(t)
	tasks := NewTaskRepository(exec)
	ctx := context.Background()

	managerID := createUser(t, exec, "lead")
	workerID := createUser(t, exec, "report")
	notStarted := statusID(t, exec, "not_started")

	// Created out of due-date order on purpose.
	mk := func(title, due string, to, by int64) {
		t.Helper()
		_, err := tasks.Create(ctx, NewTask{
			Title: title, AssignedTo: to, AssignedBy: by,
			DueDate: date(t, due), StatusID: notStarted,
		})
		if err != nil {
			t.Fatalf("creating task %s: %v", title, err)
		}
	}
	mk("later", "2026-09-20", workerID, managerID)
	mk("sooner", "2026-09-05", workerID, managerID)
	mk("upward", "2026-09-10", managerID, workerID)

	// assigned-to view: tasks the worker must do, due date ascending,
	// carrying who assigned them.
	todo, err := tasks.ListByUser(ctx, workerID, false)
	if err != nil {
		t.Fatalf("ListByUser(asManager=false) failed: %v", err)
	}
	if len(todo) != 2 {
		t.Fatalf("expected 2 assigned tasks, got %d", len(todo))
	}
	if todo[0].Title != "sooner" || todo[1].Title != "later" {
		t.Errorf("expected due-date order, got %s, %s", todo[0].Title, todo[1].Title)
	}
	if todo[0].AssignedByName != "lead" {
		t.Errorf("expected assigner name 'lead', got %q", todo[0].AssignedByName)
	}
	if todo[0].AssignedToName != "" {
		t.Errorf("assignee name should be unset in the assigned-to view, got %q", todo[0].AssignedToName)
	}

	// assigned-by view: tasks the manager handed out, carrying who got them.
	handedOut, err := tasks.ListByUser(ctx, managerID, true)
	if err != nil {
		t.Fatalf("ListByUser(asManager=true) failed: %v", err)
	}
	if len(handedOut) != 2 {
		t.Fatalf("expected 2 delegated tasks, got %d", len(handedOut))
	}
	if handedOut[0].Title != "sooner" || handedOut[1].Title != "later" {
		t.Errorf("expected due-date order, got %s, %s", handedOut[0].Title, handedOut[1].Title)
	}
	if handedOut[0].AssignedToName != "report" {
		t.Errorf("expected assignee name 'report', got %q", handedOut[0].AssignedToName)
	}

	// The worker also delegates one task upward.
	delegated, err := tasks.ListByUser(ctx, workerID, true)
	if err != nil {
		t.Fatalf("ListByUser(asManager=true) failed: %v", err)
	}
	if len(delegated) != 1 || delegated[0].Title != "upward" {
		t.Errorf("expected the single delegated task, got %v", delegated)
	}

	// No tasks in a direction yields an empty list, not nil.
	empty, err := tasks.ListByUser(ctx, 99999, false)
	if err != nil {
		t.Fatalf("ListByUser for unknown user failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestTaskUpdateStatus(t *testing.T) {
	exec := testExecutor(t)
	tasks := NewTaskRepository(exec)
	ctx := context.Background()

	userID := createUser(t, exec, "solo")

	id, err := tasks.Create(ctx, NewTask{
		Title:      "Finish report",
		AssignedTo: userID,
		AssignedBy: userID,
		DueDate:    date(t, "2026-09-30"),
		StatusID:   statusID(t, exec, "not_started"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before, err := tasks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	// Any status may follow any other; completed straight from
	// not_started is allowed.
	if err := tasks.UpdateStatus(ctx, id, statusID(t, exec, "completed")); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	after, err := tasks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if after.StatusName != "completed" {
		t.Errorf("expected status 'completed', got %q", after.StatusName)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updated_at should advance: before %v, after %v", before.UpdatedAt, after.UpdatedAt)
	}

	if err := tasks.UpdateStatus(ctx, 99999, statusID(t, exec, "on_hold")); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
