package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	store *Store
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	data, unlock := r.store.read(ctx)
	defer unlock()

	e, ok := data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return copyEmployee(e), nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	data, unlock := r.store.read(ctx)
	defer unlock()

	for _, e := range data.employees {
		if e.IsLinkedTo(userID) {
			return copyEmployee(e), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) List(ctx context.Context, criteria employee.EmployeeCriteria) ([]employee.Employee, error) {
	data, unlock := r.store.read(ctx)
	matched := matchingEmployees(data, criteria.Filter)
	unlock()

	compare := employeeComparator(criteria.Sort)
	slices.SortFunc(matched, compare)
	return pagination.Window(matched, criteria.Page), nil
}

func (r *employeeRepository) Count(ctx context.Context, filter employee.EmployeeFilter) (int64, error) {
	data, unlock := r.store.read(ctx)
	defer unlock()

	return int64(len(matchingEmployees(data, filter))), nil
}

func matchingEmployees(data *state, filter employee.EmployeeFilter) []employee.Employee {
	out := []employee.Employee{}
	for _, e := range data.employees {
		if filter.Matches(e) {
			out = append(out, copyEmployee(e))
		}
	}
	return out
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	if err := checkUnique(data, newEmployee, 0); err != nil {
		return employee.Employee{}, err
	}

	data.nextEmployeeID++
	now := r.store.now()
	newEmployee.ID = data.nextEmployeeID
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	if newEmployee.Subjects == nil {
		newEmployee.Subjects = []string{}
	}
	newEmployee = copyEmployee(newEmployee)
	data.employees[newEmployee.ID] = newEmployee
	return copyEmployee(newEmployee), nil
}

// checkUnique enforces the email and user link constraints, skipping selfID.
func checkUnique(data *state, candidate employee.Employee, selfID int64) error {
	if candidate.UserID != nil {
		if _, ok := data.users[*candidate.UserID]; !ok {
			return employee.ErrLinkedUserNotFound
		}
	}
	for id, e := range data.employees {
		if id == selfID {
			continue
		}
		if e.Email == candidate.Email {
			return employee.ErrEmailExists
		}
		if candidate.UserID != nil && e.IsLinkedTo(*candidate.UserID) {
			return employee.ErrUserAlreadyLinked
		}
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	current, ok := data.employees[req.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	updated := copyEmployee(current)
	req.ApplyTo(&updated)
	updated.UpdatedAt = r.store.now()
	data.employees[req.ID] = copyEmployee(updated)
	return updated, nil
}

func (r *employeeRepository) SetFlagged(ctx context.Context, id int64, flagged bool) (employee.Employee, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	e, ok := data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.Flagged = flagged
	e.UpdatedAt = r.store.now()
	data.employees[id] = e
	return copyEmployee(e), nil
}

// Delete removes the employee together with its tasks and attendance.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	data, unlock := r.store.write(ctx)
	defer unlock()

	if _, ok := data.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(data.employees, id)
	for taskID, t := range data.tasks {
		if t.EmployeeID == id {
			delete(data.tasks, taskID)
		}
	}
	for recordID, rec := range data.records {
		if rec.EmployeeID == id {
			delete(data.records, recordID)
		}
	}
	return nil
}

// employeeComparator orders like Postgres: NULL sorts after every value
// ascending and before every value descending. Ties fall back to id.
func employeeComparator(s employee.EmployeeSort) func(a, b employee.Employee) int {
	key := func(a, b employee.Employee) int {
		switch s.Field {
		case employee.SortFieldName:
			return strings.Compare(a.Name, b.Name)
		case employee.SortFieldEmail:
			return strings.Compare(a.Email, b.Email)
		case employee.SortFieldAge:
			return cmp.Compare(a.Age, b.Age)
		case employee.SortFieldClass:
			return strings.Compare(a.Class, b.Class)
		case employee.SortFieldDepartment:
			return compareNullable(a.Department, b.Department, strings.Compare)
		case employee.SortFieldPosition:
			return strings.Compare(a.Position, b.Position)
		case employee.SortFieldJoinDate:
			return a.JoinDate.Compare(b.JoinDate)
		case employee.SortFieldSalary:
			return compareNullable(a.Salary, b.Salary, func(x, y decimal.Decimal) int { return x.Cmp(y) })
		case employee.SortFieldFlagged:
			return compareBool(a.Flagged, b.Flagged)
		case employee.SortFieldCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		case employee.SortFieldUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return cmp.Compare(a.ID, b.ID)
		}
	}

	return func(a, b employee.Employee) int {
		c := key(a, b)
		if s.Order == employee.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}

func compareNullable[T any](a, b *T, compare func(x, y T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compare(*a, *b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
