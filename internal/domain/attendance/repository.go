package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Upsert creates the record for (EmployeeID, Date) or overwrites the
	// existing one in a single atomic statement.
	// Returns ErrEmployeeNotFound when the employee does not exist.
	Upsert(ctx context.Context, record Record) (Record, error)

	// List retrieves records for one employee, newest date first
	List(ctx context.Context, criteria AttendanceCriteria) ([]Record, error)
}
