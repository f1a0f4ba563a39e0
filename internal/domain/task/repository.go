package task

import "context"

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (Task, error)
	// List returns tasks newest first
	List(ctx context.Context, criteria TaskCriteria) ([]Task, error)
	// ListByEmployeeID returns every task of one employee, newest first
	ListByEmployeeID(ctx context.Context, employeeID int64) ([]Task, error)
	// Create returns ErrEmployeeNotFound when the employee does not exist
	Create(ctx context.Context, newTask Task) (Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (Task, error)
	Delete(ctx context.Context, id int64) error
}
