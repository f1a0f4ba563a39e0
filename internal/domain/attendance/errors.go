package attendance

import "errors"

// Attendance domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidStatus    = errors.New("status must be one of PRESENT, ABSENT, LATE, LEAVE")
)
