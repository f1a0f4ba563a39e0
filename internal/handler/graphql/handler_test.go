package graphql_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/datavista/hris-backend-go/internal/fixtures"
	hrisgraphql "github.com/datavista/hris-backend-go/internal/handler/graphql"
	"github.com/datavista/hris-backend-go/internal/handler/http/middleware"
	"github.com/datavista/hris-backend-go/internal/pkg/jwt"
	"github.com/datavista/hris-backend-go/internal/repository/memory"
	attendanceService "github.com/datavista/hris-backend-go/internal/service/attendance"
	authService "github.com/datavista/hris-backend-go/internal/service/auth"
	employeeService "github.com/datavista/hris-backend-go/internal/service/employee"
	taskService "github.com/datavista/hris-backend-go/internal/service/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sarahEmail = "sarah.johnson@datavista.com"

type testServer struct {
	handler http.Handler
	ids     fixtures.SeededDataIDs
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Status int
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

func (r gqlResponse) code() string {
	if len(r.Errors) == 0 {
		return ""
	}
	code, _ := r.Errors[0].Extensions["code"].(string)
	return code
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	ids, err := fixtures.Seed(context.Background(), fixtures.Repositories{
		Transactor: store,
		Users:      store.Users(),
		Employees:  store.Employees(),
		Tasks:      store.Tasks(),
		Attendance: store.Attendance(),
	})
	require.NoError(t, err)

	tokens := jwt.NewJWTService("graphql-test-secret", time.Hour)
	resolver := hrisgraphql.NewResolver(
		authService.NewAuthService(store, store.Users(), tokens),
		employeeService.NewEmployeeService(store, store.Employees(), store.Tasks(), store.Attendance()),
		taskService.NewTaskService(store, store.Tasks(), store.Employees(), true),
		attendanceService.NewAttendanceService(store, store.Attendance()),
		true,
	)
	schema, err := hrisgraphql.NewSchema(resolver)
	require.NoError(t, err)

	return &testServer{
		handler: middleware.Identity(tokens)(hrisgraphql.NewHandler(schema)),
		ids:     ids,
	}
}

func (s *testServer) do(t *testing.T, token, query string, variables map[string]interface{}) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)
	return s.post(t, token, body)
}

func (s *testServer) post(t *testing.T, token string, body []byte) gqlResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	resp.Status = rec.Code
	return resp
}

func decode[T any](t *testing.T, resp gqlResponse) T {
	t.Helper()
	require.Empty(t, resp.Errors)
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}

const loginMutation = `mutation Login($email: String!, $password: String!) {
	login(email: $email, password: $password) {
		token
		expiresAt
		user { id email role employee { name tasks { title } } }
	}
}`

type loginData struct {
	Login struct {
		Token string `json:"token"`
		User  struct {
			ID       int    `json:"id"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			Employee *struct {
				Name  string `json:"name"`
				Tasks []struct {
					Title string `json:"title"`
				} `json:"tasks"`
			} `json:"employee"`
		} `json:"user"`
	} `json:"login"`
}

func (s *testServer) login(t *testing.T, user fixtures.DemoUser) string {
	t.Helper()
	resp := s.do(t, "", loginMutation, map[string]interface{}{"email": user.Email, "password": user.Password})
	data := decode[loginData](t, resp)
	require.NotEmpty(t, data.Login.Token)
	return data.Login.Token
}

func TestLogin_ResolvesLinkedEmployeeWithinPayload(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "", loginMutation, map[string]interface{}{
		"email":    fixtures.EmployeeUser.Email,
		"password": fixtures.EmployeeUser.Password,
	})
	data := decode[loginData](t, resp)

	assert.Equal(t, "EMPLOYEE", data.Login.User.Role)
	assert.Equal(t, int(s.ids.EmployeeUserID), data.Login.User.ID)
	require.NotNil(t, data.Login.User.Employee)
	assert.Equal(t, "Sarah Johnson", data.Login.User.Employee.Name)
	assert.Len(t, data.Login.User.Employee.Tasks, 3)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "", loginMutation, map[string]interface{}{
		"email":    fixtures.AdminUser.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, hrisgraphql.CodeInvalidCredentials, resp.code())

	unknown := s.do(t, "", loginMutation, map[string]interface{}{
		"email":    "nobody@datavista.com",
		"password": "wrong-password",
	})
	assert.Equal(t, resp.Errors[0].Message, unknown.Errors[0].Message)
}

func TestRegister_ThenMe(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "", `mutation { register(email: "new.hire@datavista.com", password: "password123") { token user { role employee { id } } } }`, nil)
	type registerData struct {
		Register struct {
			Token string `json:"token"`
			User  struct {
				Role     string           `json:"role"`
				Employee *json.RawMessage `json:"employee"`
			} `json:"user"`
		} `json:"register"`
	}
	data := decode[registerData](t, resp)
	assert.Equal(t, "EMPLOYEE", data.Register.User.Role)
	assert.Nil(t, data.Register.User.Employee)

	me := s.do(t, data.Register.Token, `{ me { email role } }`, nil)
	assert.JSONEq(t, `{"me":{"email":"new.hire@datavista.com","role":"EMPLOYEE"}}`, string(me.Data))

	dup := s.do(t, "", `mutation { register(email: "new.hire@datavista.com", password: "password123") { token } }`, nil)
	assert.Equal(t, hrisgraphql.CodeConflict, dup.code())
}

func TestQueries_RequireAuthentication(t *testing.T) {
	s := newTestServer(t)

	for _, query := range []string{
		`{ me { id } }`,
		`{ employees { totalCount } }`,
		`{ tasks { id } }`,
		`{ employee(id: 1) { id } }`,
	} {
		resp := s.do(t, "", query, nil)
		assert.Equal(t, hrisgraphql.CodeUnauthenticated, resp.code(), query)
	}
}

func TestEmployees_FilterSortAndPage(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, fixtures.EmployeeUser)

	resp := s.do(t, token, `query($filter: EmployeeFilterInput, $sort: EmployeeSortInput) {
		employees(filter: $filter, sort: $sort) { edges { name department } totalCount hasNextPage }
	}`, map[string]interface{}{
		"filter": map[string]interface{}{"department": "Engineering"},
		"sort":   map[string]interface{}{"field": "name", "order": "asc"},
	})
	assert.JSONEq(t, `{"employees":{
		"edges":[{"name":"Alex Thompson","department":"Engineering"},{"name":"Sarah Johnson","department":"Engineering"}],
		"totalCount":2,
		"hasNextPage":false
	}}`, string(resp.Data))

	paged := s.do(t, token, `{ employees(limit: 4, offset: 0) { totalCount hasNextPage edges { id } } }`, nil)
	type pageData struct {
		Employees struct {
			TotalCount  int  `json:"totalCount"`
			HasNextPage bool `json:"hasNextPage"`
			Edges       []struct {
				ID int `json:"id"`
			} `json:"edges"`
		} `json:"employees"`
	}
	data := decode[pageData](t, paged)
	assert.Equal(t, 6, data.Employees.TotalCount)
	assert.True(t, data.Employees.HasNextPage)
	assert.Len(t, data.Employees.Edges, 4)
}

func TestEmployees_InvalidSortField(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, fixtures.AdminUser)

	resp := s.do(t, token, `{ employees(sort: {field: "password_digest", order: "asc"}) { totalCount } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, hrisgraphql.CodeBadUserInput, resp.code())
	fields, ok := resp.Errors[0].Extensions["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "sort.field")
}

func TestEmployee_Relations(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, fixtures.AdminUser)
	sarahID := s.ids.EmployeeIDs[sarahEmail]

	resp := s.do(t, token, `query($id: Int!) {
		employee(id: $id) {
			id
			salary
			joinDate
			tasks { employeeId employee { id } }
			attendance { date status checkIn employee { name } }
		}
	}`, map[string]interface{}{"id": sarahID})

	var data struct {
		Employee struct {
			ID       int      `json:"id"`
			Salary   *float64 `json:"salary"`
			JoinDate string   `json:"joinDate"`
			Tasks    []struct {
				EmployeeID int `json:"employeeId"`
				Employee   struct {
					ID int `json:"id"`
				} `json:"employee"`
			} `json:"tasks"`
			Attendance []struct {
				Date     string  `json:"date"`
				Status   string  `json:"status"`
				CheckIn  *string `json:"checkIn"`
				Employee struct {
					Name string `json:"name"`
				} `json:"employee"`
			} `json:"attendance"`
		} `json:"employee"`
	}
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	assert.Equal(t, int(sarahID), data.Employee.ID)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, data.Employee.JoinDate)
	require.Len(t, data.Employee.Tasks, 3)
	for _, task := range data.Employee.Tasks {
		assert.Equal(t, int(sarahID), task.EmployeeID)
		assert.Equal(t, int(sarahID), task.Employee.ID)
	}
	require.Len(t, data.Employee.Attendance, 3)
	assert.Equal(t, "2024-11-27", data.Employee.Attendance[0].Date)
	assert.Equal(t, "LATE", data.Employee.Attendance[0].Status)
	assert.Equal(t, "2024-11-27T10:30:00Z", *data.Employee.Attendance[0].CheckIn)
	assert.Equal(t, "Sarah Johnson", data.Employee.Attendance[0].Employee.Name)

	missing := s.do(t, token, `{ employee(id: 9999) { id } }`, nil)
	assert.Empty(t, missing.Errors)
	assert.JSONEq(t, `{"employee":null}`, string(missing.Data))
}

func TestUpdateEmployee_PresenceAndOwnership(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, fixtures.AdminUser)
	staff := s.login(t, fixtures.EmployeeUser)
	sarahID := s.ids.EmployeeIDs[sarahEmail]
	michaelID := s.ids.EmployeeIDs["michael.chen@datavista.com"]

	forbidden := s.do(t, staff, `mutation($id: Int!) { updateEmployee(id: $id, name: "Mike") { id } }`,
		map[string]interface{}{"id": michaelID})
	assert.Equal(t, hrisgraphql.CodeForbidden, forbidden.code())

	own := s.do(t, staff, `mutation($id: Int!) { updateEmployee(id: $id, phone: "+1 (555) 000-0000", salary: 1) { phone salary } }`,
		map[string]interface{}{"id": sarahID})
	var ownData struct {
		UpdateEmployee struct {
			Phone  string   `json:"phone"`
			Salary *float64 `json:"salary"`
		} `json:"updateEmployee"`
	}
	require.Empty(t, own.Errors)
	require.NoError(t, json.Unmarshal(own.Data, &ownData))
	assert.Equal(t, "+1 (555) 000-0000", ownData.UpdateEmployee.Phone)
	require.NotNil(t, ownData.UpdateEmployee.Salary)
	assert.NotEqual(t, 1.0, *ownData.UpdateEmployee.Salary)

	cleared := s.do(t, admin, `mutation($id: Int!) { updateEmployee(id: $id, age: 0, clear: ["department", "salary"]) { age department salary } }`,
		map[string]interface{}{"id": michaelID})
	assert.Empty(t, cleared.Errors)
	assert.JSONEq(t, `{"updateEmployee":{"age":0,"department":null,"salary":null}}`, string(cleared.Data))

	missing := s.do(t, admin, `mutation { updateEmployee(id: 9999, name: "Ghost") { id } }`, nil)
	assert.Equal(t, hrisgraphql.CodeNotFound, missing.code())
}

func TestUpdateEmployee_NullArgumentKeepsValue(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, fixtures.AdminUser)
	michaelID := s.ids.EmployeeIDs["michael.chen@datavista.com"]

	kept := s.do(t, admin, `mutation($id: Int!, $phone: String) { updateEmployee(id: $id, name: "Michael C.", phone: $phone) { name phone } }`,
		map[string]interface{}{"id": michaelID, "phone": nil})
	assert.Empty(t, kept.Errors)
	assert.JSONEq(t, `{"updateEmployee":{"name":"Michael C.","phone":"+1-555-0102"}}`, string(kept.Data))

	cleared := s.do(t, admin, `mutation($id: Int!) { updateEmployee(id: $id, clear: ["phone"]) { phone } }`,
		map[string]interface{}{"id": michaelID})
	assert.Empty(t, cleared.Errors)
	assert.JSONEq(t, `{"updateEmployee":{"phone":null}}`, string(cleared.Data))
}

func TestAddEmployee_AdminOnlyAndConflict(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, fixtures.AdminUser)
	staff := s.login(t, fixtures.EmployeeUser)

	const mutation = `mutation($email: String!) {
		addEmployee(name: "Priya Patel", email: $email, age: 31, class: "Senior", subjects: ["Go"],
			position: "Backend Engineer", avatar: "https://i.pravatar.cc/150?img=9", salary: 105000, joinDate: "2024-12-01") {
			name subjects joinDate salary flagged tasks { id }
		}
	}`

	denied := s.do(t, staff, mutation, map[string]interface{}{"email": "priya.patel@datavista.com"})
	assert.Equal(t, hrisgraphql.CodeForbidden, denied.code())

	created := s.do(t, admin, mutation, map[string]interface{}{"email": "priya.patel@datavista.com"})
	assert.Empty(t, created.Errors)
	assert.JSONEq(t, `{"addEmployee":{
		"name":"Priya Patel","subjects":["Go"],"joinDate":"2024-12-01","salary":105000,"flagged":false,"tasks":[]
	}}`, string(created.Data))

	dup := s.do(t, admin, mutation, map[string]interface{}{"email": sarahEmail})
	assert.Equal(t, hrisgraphql.CodeConflict, dup.code())

	invalid := s.do(t, admin, mutation, map[string]interface{}{"email": "not-an-email"})
	assert.Equal(t, hrisgraphql.CodeBadUserInput, invalid.code())
}

func TestRecordAttendance_Upserts(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, fixtures.AdminUser)
	staff := s.login(t, fixtures.EmployeeUser)
	sarahID := s.ids.EmployeeIDs[sarahEmail]

	const mutation = `mutation($id: Int!, $status: AttendanceStatus!) {
		recordAttendance(employeeId: $id, date: "2024-11-28", status: $status, checkIn: "2024-11-28T09:05:00Z") { id status date }
	}`

	denied := s.do(t, staff, mutation, map[string]interface{}{"id": sarahID, "status": "PRESENT"})
	assert.Equal(t, hrisgraphql.CodeForbidden, denied.code())

	first := s.do(t, admin, mutation, map[string]interface{}{"id": sarahID, "status": "PRESENT"})
	second := s.do(t, admin, mutation, map[string]interface{}{"id": sarahID, "status": "LATE"})
	require.Empty(t, first.Errors)
	require.Empty(t, second.Errors)

	type recorded struct {
		RecordAttendance struct {
			ID     int    `json:"id"`
			Status string `json:"status"`
		} `json:"recordAttendance"`
	}
	a, b := decode[recorded](t, first), decode[recorded](t, second)
	assert.Equal(t, a.RecordAttendance.ID, b.RecordAttendance.ID)
	assert.Equal(t, "LATE", b.RecordAttendance.Status)

	list := s.do(t, staff, `query($id: Int!) { attendance(employeeId: $id, startDate: "2024-11-28", endDate: "2024-11-28") { status } }`,
		map[string]interface{}{"id": sarahID})
	assert.JSONEq(t, `{"attendance":[{"status":"LATE"}]}`, string(list.Data))

	unknown := s.do(t, admin, mutation, map[string]interface{}{"id": 9999, "status": "PRESENT"})
	assert.Equal(t, hrisgraphql.CodeNotFound, unknown.code())
}

func TestTasks_OwnershipAndClear(t *testing.T) {
	s := newTestServer(t)
	staff := s.login(t, fixtures.EmployeeUser)
	sarahID := s.ids.EmployeeIDs[sarahEmail]
	michaelID := s.ids.EmployeeIDs["michael.chen@datavista.com"]

	denied := s.do(t, staff, `mutation($id: Int!) { addTask(title: "Not mine", employeeId: $id) { id } }`,
		map[string]interface{}{"id": michaelID})
	assert.Equal(t, hrisgraphql.CodeForbidden, denied.code())

	created := s.do(t, staff, `mutation($id: Int!) {
		addTask(title: "Write onboarding notes", description: "for new hires", dueDate: "2024-12-30", employeeId: $id) {
			id completed priority dueDate employee { name }
		}
	}`, map[string]interface{}{"id": sarahID})
	var data struct {
		AddTask struct {
			ID        int    `json:"id"`
			Completed bool   `json:"completed"`
			Priority  string `json:"priority"`
			DueDate   string `json:"dueDate"`
			Employee  struct {
				Name string `json:"name"`
			} `json:"employee"`
		} `json:"addTask"`
	}
	require.Empty(t, created.Errors)
	require.NoError(t, json.Unmarshal(created.Data, &data))
	assert.False(t, data.AddTask.Completed)
	assert.Equal(t, "medium", data.AddTask.Priority)
	assert.Equal(t, "2024-12-30", data.AddTask.DueDate)
	assert.Equal(t, "Sarah Johnson", data.AddTask.Employee.Name)

	updated := s.do(t, staff, `mutation($id: Int!) { updateTask(id: $id, completed: true, clear: ["description", "dueDate"]) { completed description dueDate } }`,
		map[string]interface{}{"id": data.AddTask.ID})
	assert.JSONEq(t, `{"updateTask":{"completed":true,"description":null,"dueDate":null}}`, string(updated.Data))

	deleted := s.do(t, staff, `mutation($id: Int!) { deleteTask(id: $id) { title } }`,
		map[string]interface{}{"id": data.AddTask.ID})
	assert.JSONEq(t, `{"deleteTask":{"title":"Write onboarding notes"}}`, string(deleted.Data))

	gone := s.do(t, staff, `query($id: Int!) { task(id: $id) { id } }`, map[string]interface{}{"id": data.AddTask.ID})
	assert.JSONEq(t, `{"task":null}`, string(gone.Data))
}

func TestDeleteEmployee_ReturnsSnapshot(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, fixtures.AdminUser)
	sarahID := s.ids.EmployeeIDs[sarahEmail]

	resp := s.do(t, admin, `mutation($id: Int!) {
		deleteEmployee(id: $id) { name tasks { title employee { name } } attendance { date } }
	}`, map[string]interface{}{"id": sarahID})

	var data struct {
		DeleteEmployee struct {
			Name  string `json:"name"`
			Tasks []struct {
				Employee struct {
					Name string `json:"name"`
				} `json:"employee"`
			} `json:"tasks"`
			Attendance []struct {
				Date string `json:"date"`
			} `json:"attendance"`
		} `json:"deleteEmployee"`
	}
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "Sarah Johnson", data.DeleteEmployee.Name)
	require.Len(t, data.DeleteEmployee.Tasks, 3)
	assert.Equal(t, "Sarah Johnson", data.DeleteEmployee.Tasks[0].Employee.Name)
	assert.Len(t, data.DeleteEmployee.Attendance, 3)

	after := s.do(t, admin, `query($id: Int!) { employee(id: $id) { id } tasks(employeeId: $id) { id } }`,
		map[string]interface{}{"id": sarahID})
	assert.JSONEq(t, `{"employee":null,"tasks":[]}`, string(after.Data))

	again := s.do(t, admin, `mutation($id: Int!) { deleteEmployee(id: $id) { id } }`, map[string]interface{}{"id": sarahID})
	assert.Equal(t, hrisgraphql.CodeNotFound, again.code())
}

func TestFlagEmployee(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, fixtures.AdminUser)
	staff := s.login(t, fixtures.EmployeeUser)
	sarahID := s.ids.EmployeeIDs[sarahEmail]

	const mutation = `mutation($id: Int!) { flagEmployee(id: $id, flagged: true) { flagged } }`
	denied := s.do(t, staff, mutation, map[string]interface{}{"id": sarahID})
	assert.Equal(t, hrisgraphql.CodeForbidden, denied.code())

	flagged := s.do(t, admin, mutation, map[string]interface{}{"id": sarahID})
	assert.JSONEq(t, `{"flagEmployee":{"flagged":true}}`, string(flagged.Data))

	list := s.do(t, admin, `{ employees(filter: {flagged: true}) { totalCount } }`, nil)
	assert.JSONEq(t, `{"employees":{"totalCount":2}}`, string(list.Data))
}

func TestHandler_RequestErrors(t *testing.T) {
	s := newTestServer(t)

	bad := s.post(t, "", []byte(`{"query":`))
	assert.Equal(t, http.StatusBadRequest, bad.Status)
	assert.Equal(t, hrisgraphql.CodeBadRequest, bad.code())

	empty := s.post(t, "", []byte(`{"query":"  "}`))
	assert.Equal(t, http.StatusBadRequest, empty.Status)

	syntax := s.do(t, "", `{ employees { `, nil)
	assert.Equal(t, http.StatusOK, syntax.Status)
	assert.Equal(t, hrisgraphql.CodeValidationFailed, syntax.code())

	unknownField := s.do(t, "", `{ salaries { id } }`, nil)
	assert.Equal(t, hrisgraphql.CodeValidationFailed, unknownField.code())
}
