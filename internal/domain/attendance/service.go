package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Record creates or overwrites the employee's record for a day (admin only)
	Record(ctx context.Context, req RecordAttendanceRequest) (Record, error)

	// List retrieves an employee's records within an optional inclusive date range
	List(ctx context.Context, req ListAttendanceRequest) ([]Record, error)

	// Recent retrieves an employee's latest records, newest first
	Recent(ctx context.Context, employeeID int64, limit int) ([]Record, error)
}
