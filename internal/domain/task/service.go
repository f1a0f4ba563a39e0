package task

import "context"

// TaskService defines business logic for task operations
type TaskService interface {
	// List returns tasks, optionally for one employee (any authenticated user)
	List(ctx context.Context, req ListTasksRequest) ([]Task, error)

	// Get returns nil when the task does not exist
	Get(ctx context.Context, id int64) (*Task, error)

	// ListByEmployee returns all tasks of an employee, newest first
	ListByEmployee(ctx context.Context, employeeID int64) ([]Task, error)

	// Create adds a task (admin, or the user linked to the employee)
	Create(ctx context.Context, req CreateTaskRequest) (Task, error)

	// Update applies a partial update (admin, or the user linked to the task's employee)
	Update(ctx context.Context, req UpdateTaskRequest) (Task, error)

	// Delete removes a task and returns it (admin, or the user linked to the task's employee)
	Delete(ctx context.Context, id int64) (Task, error)
}
