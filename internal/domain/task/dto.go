package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/datavista/hris-backend-go/internal/pkg/optional"
	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
)

const DefaultListLimit = 50

var priorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	EmployeeID  int64   `json:"employee_id"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateTitle(r.Title)...)
	if r.Priority != nil {
		errs = append(errs, validatePriority(*r.Priority)...)
	}
	if r.DueDate != nil {
		errs = append(errs, validateDueDate(*r.DueDate)...)
	}
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToTask builds the entity to insert; Validate must have passed.
func (r *CreateTaskRequest) ToTask() Task {
	t := Task{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Priority:    PriorityMedium,
		EmployeeID:  r.EmployeeID,
	}
	if r.Completed != nil {
		t.Completed = *r.Completed
	}
	if r.Priority != nil {
		t.Priority = Priority(strings.ToLower(*r.Priority))
	}
	if r.DueDate != nil {
		t.DueDate = parseDueDate(*r.DueDate)
	}
	return t
}

// Nullable fields that UpdateTaskRequest.Clear may name.
const (
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
)

var ClearableFields = []string{FieldDescription, FieldDueDate}

type UpdateTaskRequest struct {
	ID          int64
	Title       optional.Value[string]
	Description optional.Value[string]
	Completed   optional.Value[bool]
	Priority    optional.Value[string]
	DueDate     optional.Value[string]
	// Clear names nullable fields to set to null
	Clear []string
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be positive",
		})
	}
	if v, ok := r.Title.Get(); ok {
		errs = append(errs, validateTitle(v)...)
	} else if r.Title.IsNull() {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title cannot be cleared",
		})
	}
	if v, ok := r.Priority.Get(); ok {
		errs = append(errs, validatePriority(v)...)
	}
	if v, ok := r.DueDate.Get(); ok {
		errs = append(errs, validateDueDate(v)...)
	}

	for _, name := range r.Clear {
		switch name {
		case FieldDescription:
			if _, ok := r.Description.Get(); ok {
				errs = append(errs, validator.ValidationError{Field: name, Message: name + " cannot be both set and cleared"})
			}
		case FieldDueDate:
			if _, ok := r.DueDate.Get(); ok {
				errs = append(errs, validator.ValidationError{Field: name, Message: name + " cannot be both set and cleared"})
			}
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "clear",
				Message: fmt.Sprintf("%q cannot be cleared; allowed: %s", name, strings.Join(ClearableFields, ", ")),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApplyClear turns every name in Clear into an explicit null.
func (r *UpdateTaskRequest) ApplyClear() {
	for _, name := range r.Clear {
		switch name {
		case FieldDescription:
			r.Description = optional.Null[string]()
		case FieldDueDate:
			r.DueDate = optional.Null[string]()
		}
	}
	r.Clear = nil
}

// DueDateValue resolves DueDate to a calendar date.
func (r *UpdateTaskRequest) DueDateValue() optional.Value[time.Time] {
	if !r.DueDate.IsSet() {
		return optional.Value[time.Time]{}
	}
	v, ok := r.DueDate.Get()
	if !ok {
		return optional.Null[time.Time]()
	}
	return optional.FromPtr(parseDueDate(v))
}

// PriorityValue resolves Priority to its lowercase form.
func (r *UpdateTaskRequest) PriorityValue() optional.Value[Priority] {
	v, ok := r.Priority.Get()
	if !ok {
		return optional.Value[Priority]{}
	}
	return optional.Of(Priority(strings.ToLower(v)))
}

// ApplyTo copies the set fields onto t.
func (r *UpdateTaskRequest) ApplyTo(t *Task) {
	if v, ok := r.Title.Get(); ok {
		t.Title = strings.TrimSpace(v)
	}
	if r.Description.IsSet() {
		t.Description = r.Description.Ptr()
	}
	if v, ok := r.Completed.Get(); ok {
		t.Completed = v
	}
	if v, ok := r.PriorityValue().Get(); ok {
		t.Priority = v
	}
	if due := r.DueDateValue(); due.IsSet() {
		t.DueDate = due.Ptr()
	}
}

type ListTasksRequest struct {
	EmployeeID *int64
	Limit      *int
	Offset     *int
}

type TaskCriteria struct {
	EmployeeID *int64
	Page       pagination.Page
}

func (r *ListTasksRequest) Criteria() (TaskCriteria, error) {
	page, err := pagination.New(r.Limit, r.Offset, DefaultListLimit)
	if err != nil {
		field := "limit"
		if err == pagination.ErrNegativeOffset {
			field = "offset"
		}
		return TaskCriteria{}, validator.ValidationErrors{{Field: field, Message: err.Error()}}
	}
	return TaskCriteria{EmployeeID: r.EmployeeID, Page: page}, nil
}

func validateTitle(title string) validator.ValidationErrors {
	if validator.IsEmpty(title) {
		return validator.ValidationErrors{{Field: "title", Message: "title is required"}}
	}
	if len(title) > 255 {
		return validator.ValidationErrors{{Field: "title", Message: "title must not exceed 255 characters"}}
	}
	return nil
}

func validatePriority(priority string) validator.ValidationErrors {
	if !validator.IsInSlice(strings.ToLower(priority), priorities) {
		return validator.ValidationErrors{{Field: "priority", Message: "priority must be one of low, medium, high"}}
	}
	return nil
}

func validateDueDate(dueDate string) validator.ValidationErrors {
	if _, err := validator.ParseDateOrDateTime(dueDate); err != nil {
		return validator.ValidationErrors{{Field: "dueDate", Message: "dueDate " + err.Error()}}
	}
	return nil
}

func parseDueDate(s string) *time.Time {
	parsed, err := validator.ParseDateOrDateTime(s)
	if err != nil {
		return nil
	}
	d := validator.TruncateToDate(parsed)
	return &d
}
