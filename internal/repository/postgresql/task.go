package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var taskColumns = []string{
	"id", "title", "description", "completed", "priority", "due_date",
	"employee_id", "created_at", "updated_at",
}

type taskRepositoryImpl struct {
	db database.Pool
}

func NewTaskRepository(db database.Pool) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func buildTaskListQuery(criteria task.TaskCriteria) (string, []interface{}, error) {
	qb := squirrel.Select(taskColumns...).From("tasks")
	if criteria.EmployeeID != nil {
		qb = qb.Where(squirrel.Eq{"employee_id": *criteria.EmployeeID})
	}
	return qb.OrderBy("created_at DESC", "id DESC").
		Limit(uint64(criteria.Page.Limit)).
		Offset(uint64(criteria.Page.Offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id int64) (task.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return task.Task{}, fmt.Errorf("building select query: %w", err)
	}

	var found task.Task
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &found, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("scanning task: %w", err)
	}
	return found, nil
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, criteria task.TaskCriteria) ([]task.Task, error) {
	query, args, err := buildTaskListQuery(criteria)
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	tasks := []task.Task{}
	if err := pgxscan.Select(ctx, GetQuerier(ctx, r.db), &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByEmployeeID implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID int64) ([]task.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	tasks := []task.Task{}
	if err := pgxscan.Select(ctx, GetQuerier(ctx, r.db), &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list employee tasks: %w", err)
	}
	return tasks, nil
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	query, args, err := squirrel.Insert("tasks").
		Columns("title", "description", "completed", "priority", "due_date", "employee_id").
		Values(newTask.Title, newTask.Description, newTask.Completed, newTask.Priority, newTask.DueDate, newTask.EmployeeID).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return task.Task{}, fmt.Errorf("building insert query: %w", err)
	}

	var created task.Task
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &created, query, args...); err != nil {
		if isForeignKeyViolation(err, "employee_id") {
			return task.Task{}, task.ErrEmployeeNotFound
		}
		return task.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	return created, nil
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, req task.UpdateTaskRequest) (task.Task, error) {
	qb := squirrel.Update("tasks")

	if v, ok := req.Title.Get(); ok {
		qb = qb.Set("title", strings.TrimSpace(v))
	}
	if req.Description.IsSet() {
		qb = qb.Set("description", req.Description.Ptr())
	}
	if v, ok := req.Completed.Get(); ok {
		qb = qb.Set("completed", v)
	}
	if v, ok := req.PriorityValue().Get(); ok {
		qb = qb.Set("priority", v)
	}
	if due := req.DueDateValue(); due.IsSet() {
		qb = qb.Set("due_date", due.Ptr())
	}

	query, args, err := qb.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return task.Task{}, fmt.Errorf("building update query: %w", err)
	}

	var updated task.Task
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &updated, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("updating task: %w", err)
	}
	return updated, nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}
