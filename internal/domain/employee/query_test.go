package employee

import (
	"testing"

	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestListEmployeesRequest_Criteria_Defaults(t *testing.T) {
	req := ListEmployeesRequest{}
	criteria, err := req.Criteria()
	require.NoError(t, err)

	assert.Equal(t, DefaultSort, criteria.Sort)
	assert.Equal(t, pagination.Page{Limit: DefaultListLimit, Offset: 0}, criteria.Page)
	assert.Equal(t, EmployeeFilter{}, criteria.Filter)
}

func TestListEmployeesRequest_Criteria_Sort(t *testing.T) {
	tests := []struct {
		name    string
		sort    SortInput
		want    EmployeeSort
		wantErr string
	}{
		{name: "name desc", sort: SortInput{Field: "name", Order: "desc"}, want: EmployeeSort{Field: SortFieldName, Order: SortDesc}},
		{name: "order is case-insensitive", sort: SortInput{Field: "joinDate", Order: "ASC"}, want: EmployeeSort{Field: SortFieldJoinDate, Order: SortAsc}},
		{name: "unknown field", sort: SortInput{Field: "password", Order: "asc"}, wantErr: "sort.field"},
		{name: "injection attempt", sort: SortInput{Field: "id; DROP TABLE employees", Order: "asc"}, wantErr: "sort.field"},
		{name: "unknown order", sort: SortInput{Field: "id", Order: "sideways"}, wantErr: "sort.order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort := tt.sort
			req := ListEmployeesRequest{Sort: &sort}
			criteria, err := req.Criteria()
			if tt.wantErr != "" {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Contains(t, verrs.ToMap(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, criteria.Sort)
		})
	}
}

func TestListEmployeesRequest_Criteria_Pagination(t *testing.T) {
	req := ListEmployeesRequest{Limit: intPtr(-1)}
	_, err := req.Criteria()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "limit")

	req = ListEmployeesRequest{Offset: intPtr(-5)}
	_, err = req.Criteria()
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "offset")

	req = ListEmployeesRequest{Limit: intPtr(1000), Offset: intPtr(3)}
	criteria, err := req.Criteria()
	require.NoError(t, err)
	assert.Equal(t, pagination.Page{Limit: pagination.MaxLimit, Offset: 3}, criteria.Page)
}

func TestEmployeeFilter_Matches(t *testing.T) {
	eng := "Engineering"
	sarah := Employee{Name: "Sarah Johnson", Department: &eng, Position: "Senior", Class: "Full-time"}
	noDept := Employee{Name: "Alex Thompson", Position: "Junior", Flagged: true}

	assert.True(t, EmployeeFilter{}.Matches(sarah))
	assert.True(t, EmployeeFilter{Name: strPtr("sar")}.Matches(sarah))
	assert.True(t, EmployeeFilter{Name: strPtr("JOHN")}.Matches(sarah))
	assert.False(t, EmployeeFilter{Name: strPtr("sar")}.Matches(noDept))
	assert.True(t, EmployeeFilter{Department: strPtr("Engineering")}.Matches(sarah))
	assert.False(t, EmployeeFilter{Department: strPtr("engineering")}.Matches(sarah))
	assert.False(t, EmployeeFilter{Department: strPtr("Engineering")}.Matches(noDept))
	assert.True(t, EmployeeFilter{Flagged: boolPtr(true)}.Matches(noDept))
	assert.False(t, EmployeeFilter{Flagged: boolPtr(true)}.Matches(sarah))
	assert.False(t, EmployeeFilter{Name: strPtr("sar"), Position: strPtr("Junior")}.Matches(sarah))
}

func TestEmployeeFilter_BlankStringsIgnored(t *testing.T) {
	req := ListEmployeesRequest{Filter: EmployeeFilter{Name: strPtr("  "), Department: strPtr("")}}
	criteria, err := req.Criteria()
	require.NoError(t, err)
	assert.Nil(t, criteria.Filter.Name)
	assert.Nil(t, criteria.Filter.Department)
}
