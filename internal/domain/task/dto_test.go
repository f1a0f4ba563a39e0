package task

import (
	"testing"
	"time"

	"github.com/datavista/hris-backend-go/internal/pkg/optional"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskRequest_Defaults(t *testing.T) {
	req := CreateTaskRequest{Title: "Code review PR #456", EmployeeID: 1}
	require.NoError(t, req.Validate())

	task := req.ToTask()
	assert.False(t, task.Completed)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)
}

func TestCreateTaskRequest_Validate(t *testing.T) {
	priority := "urgent"
	due := "next week"
	req := CreateTaskRequest{Title: " ", Priority: &priority, DueDate: &due}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	fields := verrs.ToMap()
	for _, f := range []string{"title", "priority", "dueDate", "employeeId"} {
		assert.Contains(t, fields, f)
	}
}

func TestCreateTaskRequest_ParsesPriorityAndDueDate(t *testing.T) {
	priority := "HIGH"
	due := "2024-12-01T10:00:00Z"
	req := CreateTaskRequest{Title: "Optimize database queries", Priority: &priority, DueDate: &due, EmployeeID: 1}
	require.NoError(t, req.Validate())

	task := req.ToTask()
	assert.Equal(t, PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), *task.DueDate)
}

func TestUpdateTaskRequest_ClearAndApply(t *testing.T) {
	desc := "old"
	due := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	task := Task{Title: "Old", Description: &desc, DueDate: &due, Priority: PriorityLow}

	req := UpdateTaskRequest{
		ID:        1,
		Completed: optional.Of(false),
		Priority:  optional.Of("High"),
		Clear:     []string{FieldDescription, FieldDueDate},
	}
	require.NoError(t, req.Validate())
	req.ApplyClear()
	req.ApplyTo(&task)

	assert.Nil(t, task.Description)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, "Old", task.Title)
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	req := UpdateTaskRequest{ID: 1, Title: optional.Of(""), Clear: []string{"title"}}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "title")
	assert.Contains(t, verrs.ToMap(), "clear")

	req = UpdateTaskRequest{ID: 1, DueDate: optional.Of("2024-12-01"), Clear: []string{FieldDueDate}}
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), FieldDueDate)
}

func TestListTasksRequest_Criteria(t *testing.T) {
	req := ListTasksRequest{}
	criteria, err := req.Criteria()
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, criteria.Page.Limit)

	negative := -1
	req = ListTasksRequest{Offset: &negative}
	_, err = req.Criteria()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "offset")
}
