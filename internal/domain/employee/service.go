package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// List returns one page of employees matching the filter (any authenticated user)
	List(ctx context.Context, req ListEmployeesRequest) (EmployeeConnection, error)

	// Get returns nil when the employee does not exist (any authenticated user)
	Get(ctx context.Context, id int64) (*Employee, error)

	// GetByUserID returns the profile linked to a user, nil when there is none
	GetByUserID(ctx context.Context, userID int64) (*Employee, error)

	// Create adds an employee (admin only)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// Update applies a partial update (admin, or the linked user without salary)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	// Delete removes an employee and returns it with the tasks and attendance it had (admin only)
	Delete(ctx context.Context, id int64) (DeleteEmployeeResult, error)

	// SetFlagged sets the flag marker (admin only)
	SetFlagged(ctx context.Context, id int64, flagged bool) (Employee, error)
}
