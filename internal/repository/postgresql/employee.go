package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var employeeColumns = []string{
	"id", "user_id", "name", "email", "age", "class", "subjects", "department",
	"position", "avatar", "phone", "address", "join_date", "salary", "flagged",
	"created_at", "updated_at",
}

var validSortColumns = map[employee.SortField]string{
	employee.SortFieldID:         "id",
	employee.SortFieldName:       "name",
	employee.SortFieldEmail:      "email",
	employee.SortFieldAge:        "age",
	employee.SortFieldClass:      "class",
	employee.SortFieldDepartment: "department",
	employee.SortFieldPosition:   "position",
	employee.SortFieldJoinDate:   "join_date",
	employee.SortFieldSalary:     "salary",
	employee.SortFieldFlagged:    "flagged",
	employee.SortFieldCreatedAt:  "created_at",
	employee.SortFieldUpdatedAt:  "updated_at",
}

type employeeRepositoryImpl struct {
	db database.Pool
}

func NewEmployeeRepository(db database.Pool) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// employeeConditions translates the filter into WHERE predicates.
func employeeConditions(f employee.EmployeeFilter) squirrel.And {
	conditions := squirrel.And{}
	if f.Name != nil {
		conditions = append(conditions, squirrel.ILike{"name": "%" + escapeLike(*f.Name) + "%"})
	}
	if f.Department != nil {
		conditions = append(conditions, squirrel.Eq{"department": *f.Department})
	}
	if f.Position != nil {
		conditions = append(conditions, squirrel.Eq{"position": *f.Position})
	}
	if f.Class != nil {
		conditions = append(conditions, squirrel.Eq{"class": *f.Class})
	}
	if f.Flagged != nil {
		conditions = append(conditions, squirrel.Eq{"flagged": *f.Flagged})
	}
	return conditions
}

// employeeOrderBy always ends with id so equal sort keys page deterministically.
func employeeOrderBy(s employee.EmployeeSort) ([]string, error) {
	column, ok := validSortColumns[s.Field]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", s.Field)
	}
	direction := "ASC"
	if s.Order == employee.SortDesc {
		direction = "DESC"
	}
	order := []string{column + " " + direction}
	if column != "id" {
		order = append(order, "id ASC")
	}
	return order, nil
}

func buildEmployeeListQuery(criteria employee.EmployeeCriteria) (string, []interface{}, error) {
	orderBy, err := employeeOrderBy(criteria.Sort)
	if err != nil {
		return "", nil, err
	}

	qb := squirrel.Select(employeeColumns...).From("employees")
	if conditions := employeeConditions(criteria.Filter); len(conditions) > 0 {
		qb = qb.Where(conditions)
	}
	return qb.OrderBy(orderBy...).
		Limit(uint64(criteria.Page.Limit)).
		Offset(uint64(criteria.Page.Offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildEmployeeCountQuery(filter employee.EmployeeFilter) (string, []interface{}, error) {
	qb := squirrel.Select("COUNT(*)").From("employees")
	if conditions := employeeConditions(filter); len(conditions) > 0 {
		qb = qb.Where(conditions)
	}
	return qb.PlaceholderFormat(squirrel.Dollar).ToSql()
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, criteria employee.EmployeeCriteria) ([]employee.Employee, error) {
	query, args, err := buildEmployeeListQuery(criteria)
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	employees := []employee.Employee{}
	if err := pgxscan.Select(ctx, GetQuerier(ctx, r.db), &employees, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context, filter employee.EmployeeFilter) (int64, error) {
	query, args, err := buildEmployeeCountQuery(filter)
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}

	var total int64
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, where squirrel.Eq) (employee.Employee, error) {
	query, args, err := squirrel.Select(employeeColumns...).
		From("employees").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("building select query: %w", err)
	}

	var found employee.Employee
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &found, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("scanning employee: %w", err)
	}
	return found, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	subjects := newEmployee.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	query, args, err := squirrel.Insert("employees").
		Columns(
			"user_id", "name", "email", "age", "class", "subjects", "department",
			"position", "avatar", "phone", "address", "join_date", "salary", "flagged",
		).
		Values(
			newEmployee.UserID, newEmployee.Name, newEmployee.Email, newEmployee.Age,
			newEmployee.Class, subjects, newEmployee.Department, newEmployee.Position,
			newEmployee.Avatar, newEmployee.Phone, newEmployee.Address, newEmployee.JoinDate,
			newEmployee.Salary, newEmployee.Flagged,
		).
		Suffix("RETURNING " + strings.Join(employeeColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("building insert query: %w", err)
	}

	var created employee.Employee
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &created, query, args...); err != nil {
		return employee.Employee{}, translateEmployeeWriteError(err, "inserting employee")
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	qb := squirrel.Update("employees")

	if v, ok := req.Name.Get(); ok {
		qb = qb.Set("name", v)
	}
	if v, ok := req.Age.Get(); ok {
		qb = qb.Set("age", v)
	}
	if v, ok := req.Class.Get(); ok {
		qb = qb.Set("class", v)
	}
	if req.Subjects.IsSet() {
		subjects, _ := req.Subjects.Get()
		if subjects == nil {
			subjects = []string{}
		}
		qb = qb.Set("subjects", subjects)
	}
	if req.Department.IsSet() {
		qb = qb.Set("department", req.Department.Ptr())
	}
	if v, ok := req.Position.Get(); ok {
		qb = qb.Set("position", v)
	}
	if v, ok := req.Avatar.Get(); ok {
		qb = qb.Set("avatar", v)
	}
	if req.Phone.IsSet() {
		qb = qb.Set("phone", req.Phone.Ptr())
	}
	if req.Address.IsSet() {
		qb = qb.Set("address", req.Address.Ptr())
	}
	if req.Salary.IsSet() {
		qb = qb.Set("salary", req.Salary.Ptr())
	}

	query, args, err := qb.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix("RETURNING " + strings.Join(employeeColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("building update query: %w", err)
	}

	var updated employee.Employee
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &updated, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, translateEmployeeWriteError(err, "updating employee")
	}
	return updated, nil
}

// SetFlagged implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetFlagged(ctx context.Context, id int64, flagged bool) (employee.Employee, error) {
	query, args, err := squirrel.Update("employees").
		Set("flagged", flagged).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(employeeColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("building update query: %w", err)
	}

	var updated employee.Employee
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &updated, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("flagging employee: %w", err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.Delete("employees").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func translateEmployeeWriteError(err error, action string) error {
	switch {
	case isUniqueViolation(err, "email"):
		return employee.ErrEmailExists
	case isUniqueViolation(err, "user_id"):
		return employee.ErrUserAlreadyLinked
	case isForeignKeyViolation(err, "user_id"):
		return employee.ErrLinkedUserNotFound
	}
	return fmt.Errorf("%s: %w", action, err)
}
