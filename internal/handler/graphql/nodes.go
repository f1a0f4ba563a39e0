package graphql

import (
	"context"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
)

// scope carries an identity established during the request (register,
// login) down to nested fields. The zero value uses the request identity.
type scope struct {
	viewer *auth.Identity
}

func (s scope) context(ctx context.Context) context.Context {
	if s.viewer == nil {
		return ctx
	}
	return auth.WithIdentity(ctx, *s.viewer)
}

type userNode struct {
	user.User
	scope
}

type authPayloadNode struct {
	auth.AuthPayload
	user userNode
}

type connectionNode struct {
	employee.EmployeeConnection
	edges []employeeNode
}

type employeeNode struct {
	employee.Employee
	scope

	// set for deleted employees whose relations no longer exist in storage
	snapshot   bool
	tasks      []task.Task
	attendance []attendance.Record
}

type taskNode struct {
	task.Task
	scope
	owner *employee.Employee
}

type recordNode struct {
	attendance.Record
	scope
	owner *employee.Employee
}

func newEmployeeNodes(employees []employee.Employee, s scope) []employeeNode {
	nodes := make([]employeeNode, len(employees))
	for i, e := range employees {
		nodes[i] = employeeNode{Employee: e, scope: s}
	}
	return nodes
}

func newTaskNodes(tasks []task.Task, s scope, owner *employee.Employee) []taskNode {
	nodes := make([]taskNode, len(tasks))
	for i, t := range tasks {
		nodes[i] = taskNode{Task: t, scope: s, owner: owner}
	}
	return nodes
}

func newRecordNodes(records []attendance.Record, s scope, owner *employee.Employee) []recordNode {
	nodes := make([]recordNode, len(records))
	for i, r := range records {
		nodes[i] = recordNode{Record: r, scope: s, owner: owner}
	}
	return nodes
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(validator.DateLayout)
}

// Nullable scalars must resolve to an untyped nil.

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableTimestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTimestamp(*t)
}

func nullableDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}
