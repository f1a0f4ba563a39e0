package graphql

import (
	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/graphql-go/graphql"
)

// Resolver binds schema fields to the domain services.
type Resolver struct {
	authService       auth.AuthService
	employeeService   employee.EmployeeService
	taskService       task.TaskService
	attendanceService attendance.AttendanceService
	production        bool
}

func NewResolver(
	authService auth.AuthService,
	employeeService employee.EmployeeService,
	taskService task.TaskService,
	attendanceService attendance.AttendanceService,
	production bool,
) *Resolver {
	return &Resolver{
		authService:       authService,
		employeeService:   employeeService,
		taskService:       taskService,
		attendanceService: attendanceService,
		production:        production,
	}
}

// wrap maps service errors to coded GraphQL errors.
func (r *Resolver) wrap(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err != nil {
			return nil, toGraphQLError(err, r.production)
		}
		return out, nil
	}
}

func newAuthPayloadNode(payload auth.AuthPayload) authPayloadNode {
	viewer := auth.Identity{SubjectID: payload.User.ID, Role: payload.User.Role}
	return authPayloadNode{
		AuthPayload: payload,
		user:        userNode{User: payload.User, scope: scope{viewer: &viewer}},
	}
}

// Queries

func (r *Resolver) me(p graphql.ResolveParams) (interface{}, error) {
	u, err := r.authService.Me(p.Context)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return userNode{User: *u}, nil
}

func (r *Resolver) employees(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	req := employee.ListEmployeesRequest{
		Limit:  args.intPtr("limit"),
		Offset: args.intPtr("offset"),
	}
	if f := args.object("filter"); f != nil {
		req.Filter = employee.EmployeeFilter{
			Name:       f.strPtr("name"),
			Department: f.strPtr("department"),
			Position:   f.strPtr("position"),
			Class:      f.strPtr("class"),
			Flagged:    f.boolPtr("flagged"),
		}
	}
	if s := args.object("sort"); s != nil {
		req.Sort = &employee.SortInput{Field: s.str("field"), Order: s.str("order")}
	}

	conn, err := r.employeeService.List(p.Context, req)
	if err != nil {
		return nil, err
	}
	return connectionNode{EmployeeConnection: conn, edges: newEmployeeNodes(conn.Edges, scope{})}, nil
}

func (r *Resolver) employee(p graphql.ResolveParams) (interface{}, error) {
	e, err := r.employeeService.Get(p.Context, arguments(p.Args).id("id"))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return employeeNode{Employee: *e}, nil
}

func (r *Resolver) tasks(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	tasks, err := r.taskService.List(p.Context, task.ListTasksRequest{
		EmployeeID: args.int64Ptr("employeeId"),
		Limit:      args.intPtr("limit"),
		Offset:     args.intPtr("offset"),
	})
	if err != nil {
		return nil, err
	}
	return newTaskNodes(tasks, scope{}, nil), nil
}

func (r *Resolver) task(p graphql.ResolveParams) (interface{}, error) {
	t, err := r.taskService.Get(p.Context, arguments(p.Args).id("id"))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return taskNode{Task: *t}, nil
}

func (r *Resolver) attendanceRecords(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	records, err := r.attendanceService.List(p.Context, attendance.ListAttendanceRequest{
		EmployeeID: args.id("employeeId"),
		StartDate:  args.strPtr("startDate"),
		EndDate:    args.strPtr("endDate"),
	})
	if err != nil {
		return nil, err
	}
	return newRecordNodes(records, scope{}, nil), nil
}

// Mutations

func (r *Resolver) register(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	req := auth.RegisterRequest{Email: args.str("email"), Password: args.str("password")}
	if role := args.strPtr("role"); role != nil {
		requested := user.Role(*role)
		req.Role = &requested
	}

	payload, err := r.authService.Register(p.Context, req)
	if err != nil {
		return nil, err
	}
	return newAuthPayloadNode(payload), nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	payload, err := r.authService.Login(p.Context, auth.LoginRequest{
		Email:    args.str("email"),
		Password: args.str("password"),
	})
	if err != nil {
		return nil, err
	}
	return newAuthPayloadNode(payload), nil
}

func (r *Resolver) addEmployee(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	age, _ := args["age"].(int)
	created, err := r.employeeService.Create(p.Context, employee.CreateEmployeeRequest{
		UserID:     args.int64Ptr("userId"),
		Name:       args.str("name"),
		Email:      args.str("email"),
		Age:        age,
		Class:      args.str("class"),
		Subjects:   args.strList("subjects"),
		Department: args.strPtr("department"),
		Position:   args.str("position"),
		Avatar:     args.str("avatar"),
		Phone:      args.strPtr("phone"),
		Address:    args.strPtr("address"),
		JoinDate:   args.strPtr("joinDate"),
		Salary:     args.decimalPtr("salary"),
	})
	if err != nil {
		return nil, err
	}
	return employeeNode{Employee: created}, nil
}

func (r *Resolver) updateEmployee(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	updated, err := r.employeeService.Update(p.Context, employee.UpdateEmployeeRequest{
		ID:         args.id("id"),
		Name:       optionalOf(args, "name", asString),
		Age:        optionalOf(args, "age", asInt),
		Class:      optionalOf(args, "class", asString),
		Subjects:   optionalOf(args, "subjects", asStrings),
		Department: optionalOf(args, "department", asString),
		Position:   optionalOf(args, "position", asString),
		Avatar:     optionalOf(args, "avatar", asString),
		Phone:      optionalOf(args, "phone", asString),
		Address:    optionalOf(args, "address", asString),
		Salary:     optionalOf(args, "salary", asDecimal),
		Clear:      args.strList("clear"),
	})
	if err != nil {
		return nil, err
	}
	return employeeNode{Employee: updated}, nil
}

func (r *Resolver) deleteEmployee(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.employeeService.Delete(p.Context, arguments(p.Args).id("id"))
	if err != nil {
		return nil, err
	}
	return employeeNode{
		Employee:   result.Employee,
		snapshot:   true,
		tasks:      result.Tasks,
		attendance: result.Attendance,
	}, nil
}

func (r *Resolver) flagEmployee(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	flagged, _ := args["flagged"].(bool)
	updated, err := r.employeeService.SetFlagged(p.Context, args.id("id"), flagged)
	if err != nil {
		return nil, err
	}
	return employeeNode{Employee: updated}, nil
}

func (r *Resolver) addTask(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	created, err := r.taskService.Create(p.Context, task.CreateTaskRequest{
		Title:       args.str("title"),
		Description: args.strPtr("description"),
		Completed:   args.boolPtr("completed"),
		Priority:    args.strPtr("priority"),
		DueDate:     args.strPtr("dueDate"),
		EmployeeID:  args.id("employeeId"),
	})
	if err != nil {
		return nil, err
	}
	return taskNode{Task: created}, nil
}

func (r *Resolver) updateTask(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	updated, err := r.taskService.Update(p.Context, task.UpdateTaskRequest{
		ID:          args.id("id"),
		Title:       optionalOf(args, "title", asString),
		Description: optionalOf(args, "description", asString),
		Completed:   optionalOf(args, "completed", asBool),
		Priority:    optionalOf(args, "priority", asString),
		DueDate:     optionalOf(args, "dueDate", asString),
		Clear:       args.strList("clear"),
	})
	if err != nil {
		return nil, err
	}
	return taskNode{Task: updated}, nil
}

func (r *Resolver) deleteTask(p graphql.ResolveParams) (interface{}, error) {
	deleted, err := r.taskService.Delete(p.Context, arguments(p.Args).id("id"))
	if err != nil {
		return nil, err
	}
	return taskNode{Task: deleted}, nil
}

func (r *Resolver) recordAttendance(p graphql.ResolveParams) (interface{}, error) {
	args := arguments(p.Args)
	record, err := r.attendanceService.Record(p.Context, attendance.RecordAttendanceRequest{
		EmployeeID: args.id("employeeId"),
		Date:       args.str("date"),
		Status:     args.str("status"),
		CheckIn:    args.strPtr("checkIn"),
		CheckOut:   args.strPtr("checkOut"),
		Notes:      args.strPtr("notes"),
	})
	if err != nil {
		return nil, err
	}
	return recordNode{Record: record}, nil
}

// Relations

func (r *Resolver) userEmployee(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(userNode)
	if !ok {
		return nil, nil
	}
	e, err := r.employeeService.GetByUserID(src.context(p.Context), src.ID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return employeeNode{Employee: *e, scope: src.scope}, nil
}

func (r *Resolver) employeeTasks(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(employeeNode)
	if !ok {
		return nil, nil
	}
	owner := src.Employee
	if src.snapshot {
		return newTaskNodes(src.tasks, src.scope, &owner), nil
	}

	tasks, err := r.taskService.ListByEmployee(src.context(p.Context), src.ID)
	if err != nil {
		return nil, err
	}
	return newTaskNodes(tasks, src.scope, &owner), nil
}

func (r *Resolver) employeeAttendance(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(employeeNode)
	if !ok {
		return nil, nil
	}
	owner := src.Employee
	if src.snapshot {
		records := src.attendance
		if len(records) > attendance.RecentLimit {
			records = records[:attendance.RecentLimit]
		}
		return newRecordNodes(records, src.scope, &owner), nil
	}

	records, err := r.attendanceService.Recent(src.context(p.Context), src.ID, attendance.RecentLimit)
	if err != nil {
		return nil, err
	}
	return newRecordNodes(records, src.scope, &owner), nil
}

func (r *Resolver) taskEmployee(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(taskNode)
	if !ok {
		return nil, nil
	}
	return r.ownerOf(p, src.scope, src.owner, src.EmployeeID)
}

func (r *Resolver) recordEmployee(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(recordNode)
	if !ok {
		return nil, nil
	}
	return r.ownerOf(p, src.scope, src.owner, src.EmployeeID)
}

// ownerOf resolves the employee a task or record belongs to, reusing the
// parent when the row was reached through it.
func (r *Resolver) ownerOf(p graphql.ResolveParams, s scope, owner *employee.Employee, employeeID int64) (interface{}, error) {
	if owner != nil {
		return employeeNode{Employee: *owner, scope: s}, nil
	}
	e, err := r.employeeService.Get(s.context(p.Context), employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, employee.ErrEmployeeNotFound
	}
	return employeeNode{Employee: *e, scope: s}, nil
}
