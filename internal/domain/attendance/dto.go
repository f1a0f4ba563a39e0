package attendance

import (
	"strings"
	"time"

	"github.com/datavista/hris-backend-go/internal/pkg/validator"
)

// RecentLimit caps the records embedded in an employee.
const RecentLimit = 30

type RecordAttendanceRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be positive",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, err := validator.ParseDateOrDateTime(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date " + err.Error(),
		})
	}

	if !Status(strings.ToUpper(r.Status)).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	var checkIn, checkOut time.Time
	if r.CheckIn != nil {
		t, err := validator.ParseDateOrDateTime(*r.CheckIn)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "checkIn",
				Message: "checkIn " + err.Error(),
			})
		}
		checkIn = t
	}
	if r.CheckOut != nil {
		t, err := validator.ParseDateOrDateTime(*r.CheckOut)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "checkOut",
				Message: "checkOut " + err.Error(),
			})
		}
		checkOut = t
	}
	if !checkIn.IsZero() && !checkOut.IsZero() && checkOut.Before(checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "checkOut",
			Message: "checkOut must not be before checkIn",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToRecord builds the record to upsert; Validate must have passed.
func (r *RecordAttendanceRequest) ToRecord() Record {
	date, _ := validator.ParseDateOrDateTime(r.Date)
	rec := Record{
		EmployeeID: r.EmployeeID,
		Date:       validator.TruncateToDate(date),
		Status:     Status(strings.ToUpper(r.Status)),
		Notes:      r.Notes,
	}
	if r.CheckIn != nil {
		if t, err := validator.ParseDateOrDateTime(*r.CheckIn); err == nil {
			rec.CheckIn = &t
		}
	}
	if r.CheckOut != nil {
		if t, err := validator.ParseDateOrDateTime(*r.CheckOut); err == nil {
			rec.CheckOut = &t
		}
	}
	return rec
}

type ListAttendanceRequest struct {
	EmployeeID int64
	StartDate  *string
	EndDate    *string
}

// AttendanceCriteria bounds are inclusive calendar dates; Limit 0 means no limit.
type AttendanceCriteria struct {
	EmployeeID int64
	From       *time.Time
	To         *time.Time
	Limit      int
}

// Criteria validates the request and parses the date bounds.
func (r *ListAttendanceRequest) Criteria() (AttendanceCriteria, error) {
	var errs validator.ValidationErrors
	criteria := AttendanceCriteria{EmployeeID: r.EmployeeID}

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be positive",
		})
	}
	if r.StartDate != nil && !validator.IsEmpty(*r.StartDate) {
		t, err := validator.ParseDateOrDateTime(*r.StartDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate " + err.Error(),
			})
		} else {
			from := validator.TruncateToDate(t)
			criteria.From = &from
		}
	}
	if r.EndDate != nil && !validator.IsEmpty(*r.EndDate) {
		t, err := validator.ParseDateOrDateTime(*r.EndDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate " + err.Error(),
			})
		} else {
			to := validator.TruncateToDate(t)
			criteria.To = &to
		}
	}

	if len(errs) > 0 {
		return AttendanceCriteria{}, errs
	}

	return criteria, nil
}

// Matches evaluates the criteria bounds against one record.
func (c AttendanceCriteria) Matches(rec Record) bool {
	if rec.EmployeeID != c.EmployeeID {
		return false
	}
	day := validator.TruncateToDate(rec.Date)
	if c.From != nil && day.Before(*c.From) {
		return false
	}
	if c.To != nil && day.After(*c.To) {
		return false
	}
	return true
}
