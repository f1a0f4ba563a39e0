package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByUserID(ctx context.Context, userID int64) (Employee, error)
	List(ctx context.Context, criteria EmployeeCriteria) ([]Employee, error)
	Count(ctx context.Context, filter EmployeeFilter) (int64, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Update writes only the fields set on req
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	SetFlagged(ctx context.Context, id int64, flagged bool) (Employee, error)
	// Delete removes the employee; tasks and attendance go with it
	Delete(ctx context.Context, id int64) error
}
