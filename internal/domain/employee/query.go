package employee

import (
	"strings"

	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
)

const DefaultListLimit = 10

// EmployeeFilter fields compose with AND; nil fields impose no constraint.
type EmployeeFilter struct {
	Name       *string // case-insensitive substring
	Department *string
	Position   *string
	Class      *string
	Flagged    *bool
}

// normalize drops blank string filters.
func (f EmployeeFilter) normalize() EmployeeFilter {
	blank := func(s *string) *string {
		if s == nil || validator.IsEmpty(*s) {
			return nil
		}
		return s
	}
	return EmployeeFilter{
		Name:       blank(f.Name),
		Department: blank(f.Department),
		Position:   blank(f.Position),
		Class:      blank(f.Class),
		Flagged:    f.Flagged,
	}
}

// Matches evaluates the filter against one employee.
func (f EmployeeFilter) Matches(e Employee) bool {
	if f.Name != nil && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(*f.Name)) {
		return false
	}
	if f.Department != nil && (e.Department == nil || *e.Department != *f.Department) {
		return false
	}
	if f.Position != nil && e.Position != *f.Position {
		return false
	}
	if f.Class != nil && e.Class != *f.Class {
		return false
	}
	if f.Flagged != nil && e.Flagged != *f.Flagged {
		return false
	}
	return true
}

type SortField string

const (
	SortFieldID         SortField = "id"
	SortFieldName       SortField = "name"
	SortFieldEmail      SortField = "email"
	SortFieldAge        SortField = "age"
	SortFieldClass      SortField = "class"
	SortFieldDepartment SortField = "department"
	SortFieldPosition   SortField = "position"
	SortFieldJoinDate   SortField = "joinDate"
	SortFieldSalary     SortField = "salary"
	SortFieldFlagged    SortField = "flagged"
	SortFieldCreatedAt  SortField = "createdAt"
	SortFieldUpdatedAt  SortField = "updatedAt"
)

var SortFields = []SortField{
	SortFieldID, SortFieldName, SortFieldEmail, SortFieldAge, SortFieldClass,
	SortFieldDepartment, SortFieldPosition, SortFieldJoinDate, SortFieldSalary,
	SortFieldFlagged, SortFieldCreatedAt, SortFieldUpdatedAt,
}

func (f SortField) IsValid() bool {
	for _, allowed := range SortFields {
		if f == allowed {
			return true
		}
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type EmployeeSort struct {
	Field SortField
	Order SortOrder
}

var DefaultSort = EmployeeSort{Field: SortFieldID, Order: SortAsc}

// SortInput is the raw client sort, checked against SortFields.
type SortInput struct {
	Field string
	Order string
}

// EmployeeCriteria is a validated listing query.
type EmployeeCriteria struct {
	Filter EmployeeFilter
	Sort   EmployeeSort
	Page   pagination.Page
}

type ListEmployeesRequest struct {
	Filter EmployeeFilter
	Sort   *SortInput
	Limit  *int
	Offset *int
}

// Criteria validates the request and resolves defaults.
func (r *ListEmployeesRequest) Criteria() (EmployeeCriteria, error) {
	var errs validator.ValidationErrors

	sort := DefaultSort
	if r.Sort != nil {
		field := SortField(strings.TrimSpace(r.Sort.Field))
		if !field.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "sort.field",
				Message: "sort.field must be one of " + joinSortFields(),
			})
		}
		order := SortOrder(strings.ToLower(strings.TrimSpace(r.Sort.Order)))
		if order != SortAsc && order != SortDesc {
			errs = append(errs, validator.ValidationError{
				Field:   "sort.order",
				Message: "sort.order must be asc or desc",
			})
		}
		sort = EmployeeSort{Field: field, Order: order}
	}

	page, err := pagination.New(r.Limit, r.Offset, DefaultListLimit)
	if err != nil {
		field := "limit"
		if err == pagination.ErrNegativeOffset {
			field = "offset"
		}
		errs = append(errs, validator.ValidationError{Field: field, Message: err.Error()})
	}

	if len(errs) > 0 {
		return EmployeeCriteria{}, errs
	}

	return EmployeeCriteria{
		Filter: r.Filter.normalize(),
		Sort:   sort,
		Page:   page,
	}, nil
}

type EmployeeConnection struct {
	Edges       []Employee `json:"edges"`
	TotalCount  int64      `json:"total_count"`
	HasNextPage bool       `json:"has_next_page"`
}

func joinSortFields() string {
	names := make([]string, len(SortFields))
	for i, f := range SortFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
