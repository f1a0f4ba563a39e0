package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/pkg/optional"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	UserID     *int64           `json:"user_id,omitempty"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Age        int              `json:"age"`
	Class      string           `json:"class"`
	Subjects   []string         `json:"subjects"`
	Department *string          `json:"department,omitempty"`
	Position   string           `json:"position"`
	Avatar     string           `json:"avatar"`
	Phone      *string          `json:"phone,omitempty"`
	Address    *string          `json:"address,omitempty"`
	JoinDate   *string          `json:"join_date,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	r.Email = strings.TrimSpace(r.Email)
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address, e.g. user@example.com",
		})
	}

	errs = append(errs, validateAge(r.Age)...)

	if validator.IsEmpty(r.Class) {
		errs = append(errs, validator.ValidationError{
			Field:   "class",
			Message: "class is required",
		})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if r.JoinDate != nil {
		if _, err := validator.ParseDateOrDateTime(*r.JoinDate); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "joinDate",
				Message: "joinDate " + err.Error(),
			})
		}
	}

	if r.Salary != nil {
		errs = append(errs, validateSalary(*r.Salary)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEmployee builds the entity to insert; Validate must have passed.
func (r *CreateEmployeeRequest) ToEmployee(now time.Time) Employee {
	joinDate := validator.TruncateToDate(now)
	if r.JoinDate != nil {
		if parsed, err := validator.ParseDateOrDateTime(*r.JoinDate); err == nil {
			joinDate = validator.TruncateToDate(parsed)
		}
	}
	subjects := r.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return Employee{
		UserID:     r.UserID,
		Name:       r.Name,
		Email:      r.Email,
		Age:        r.Age,
		Class:      r.Class,
		Subjects:   subjects,
		Department: r.Department,
		Position:   r.Position,
		Avatar:     r.Avatar,
		Phone:      r.Phone,
		Address:    r.Address,
		JoinDate:   joinDate,
		Salary:     r.Salary,
		Flagged:    false,
	}
}

// Nullable fields that UpdateEmployeeRequest.Clear may name.
const (
	FieldDepartment = "department"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldSalary     = "salary"
)

var ClearableFields = []string{FieldDepartment, FieldPhone, FieldAddress, FieldSalary}

// UpdateEmployeeRequest is a partial update. Only set fields are written;
// a set zero value (age 0, empty string) is a real update.
type UpdateEmployeeRequest struct {
	ID         int64
	Name       optional.Value[string]
	Age        optional.Value[int]
	Class      optional.Value[string]
	Subjects   optional.Value[[]string]
	Department optional.Value[string]
	Position   optional.Value[string]
	Avatar     optional.Value[string]
	Phone      optional.Value[string]
	Address    optional.Value[string]
	Salary     optional.Value[decimal.Decimal]
	// Clear names nullable fields to set to null
	Clear []string
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be positive",
		})
	}
	if age, ok := r.Age.Get(); ok {
		errs = append(errs, validateAge(age)...)
	}
	if salary, ok := r.Salary.Get(); ok {
		errs = append(errs, validateSalary(salary)...)
	}

	for _, name := range r.Clear {
		if !validator.IsInSlice(name, ClearableFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "clear",
				Message: fmt.Sprintf("%q cannot be cleared; allowed: %s", name, strings.Join(ClearableFields, ", ")),
			})
			continue
		}
		if r.nullable(name).IsSet() && !r.nullable(name).IsNull() {
			errs = append(errs, validator.ValidationError{
				Field:   name,
				Message: name + " cannot be both set and cleared",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateEmployeeRequest) nullable(name string) optional.Value[string] {
	switch name {
	case FieldDepartment:
		return r.Department
	case FieldPhone:
		return r.Phone
	case FieldAddress:
		return r.Address
	case FieldSalary:
		if s, ok := r.Salary.Get(); ok {
			return optional.Of(s.String())
		}
		if r.Salary.IsNull() {
			return optional.Null[string]()
		}
	}
	return optional.Value[string]{}
}

// ApplyClear turns every name in Clear into an explicit null.
func (r *UpdateEmployeeRequest) ApplyClear() {
	for _, name := range r.Clear {
		switch name {
		case FieldDepartment:
			r.Department = optional.Null[string]()
		case FieldPhone:
			r.Phone = optional.Null[string]()
		case FieldAddress:
			r.Address = optional.Null[string]()
		case FieldSalary:
			r.Salary = optional.Null[decimal.Decimal]()
		}
	}
	r.Clear = nil
}

// HasChanges reports whether any field would be written.
func (r *UpdateEmployeeRequest) HasChanges() bool {
	return r.Name.IsSet() || r.Age.IsSet() || r.Class.IsSet() || r.Subjects.IsSet() ||
		r.Department.IsSet() || r.Position.IsSet() || r.Avatar.IsSet() ||
		r.Phone.IsSet() || r.Address.IsSet() || r.Salary.IsSet()
}

// ApplyTo copies the set fields onto e.
func (r *UpdateEmployeeRequest) ApplyTo(e *Employee) {
	if v, ok := r.Name.Get(); ok {
		e.Name = v
	}
	if v, ok := r.Age.Get(); ok {
		e.Age = v
	}
	if v, ok := r.Class.Get(); ok {
		e.Class = v
	}
	if r.Subjects.IsSet() {
		subjects, _ := r.Subjects.Get()
		if subjects == nil {
			subjects = []string{}
		}
		e.Subjects = subjects
	}
	if r.Department.IsSet() {
		e.Department = r.Department.Ptr()
	}
	if v, ok := r.Position.Get(); ok {
		e.Position = v
	}
	if v, ok := r.Avatar.Get(); ok {
		e.Avatar = v
	}
	if r.Phone.IsSet() {
		e.Phone = r.Phone.Ptr()
	}
	if r.Address.IsSet() {
		e.Address = r.Address.Ptr()
	}
	if r.Salary.IsSet() {
		e.Salary = r.Salary.Ptr()
	}
}

// DeleteEmployeeResult is the removed employee with the rows removed alongside it.
type DeleteEmployeeResult struct {
	Employee   Employee
	Tasks      []task.Task
	Attendance []attendance.Record
}

func validateAge(age int) validator.ValidationErrors {
	if age < 0 || age > 150 {
		return validator.ValidationErrors{{
			Field:   "age",
			Message: "age must be between 0 and 150",
		}}
	}
	return nil
}

func validateSalary(salary decimal.Decimal) validator.ValidationErrors {
	if salary.IsNegative() {
		return validator.ValidationErrors{{
			Field:   "salary",
			Message: "salary must not be negative",
		}}
	}
	return nil
}
