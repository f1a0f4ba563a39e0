package graphql

import (
	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/graphql-go/graphql"
)

// fieldOf resolves a field from a source of type T.
func fieldOf[T any](typ graphql.Output, get func(T) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src, ok := p.Source.(T)
			if !ok {
				return nil, nil
			}
			return get(src), nil
		},
	}
}

func nonNull(t graphql.Type) *graphql.NonNull {
	return graphql.NewNonNull(t)
}

func listOf(t graphql.Type) *graphql.NonNull {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

type schemaTypes struct {
	role             *graphql.Enum
	attendanceStatus *graphql.Enum

	user        *graphql.Object
	authPayload *graphql.Object
	employee    *graphql.Object
	task        *graphql.Object
	record      *graphql.Object
	connection  *graphql.Object

	employeeFilter *graphql.InputObject
	employeeSort   *graphql.InputObject
}

// NewSchema builds the executable schema around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := &schemaTypes{}
	t.role = graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			string(user.RoleAdmin):    &graphql.EnumValueConfig{Value: string(user.RoleAdmin)},
			string(user.RoleEmployee): &graphql.EnumValueConfig{Value: string(user.RoleEmployee)},
		},
	})

	statuses := graphql.EnumValueConfigMap{}
	for _, s := range attendance.Statuses {
		statuses[string(s)] = &graphql.EnumValueConfig{Value: string(s)}
	}
	t.attendanceStatus = graphql.NewEnum(graphql.EnumConfig{Name: "AttendanceStatus", Values: statuses})

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        fieldOf(nonNull(graphql.Int), func(u userNode) interface{} { return int(u.ID) }),
				"email":     fieldOf(nonNull(graphql.String), func(u userNode) interface{} { return u.Email }),
				"role":      fieldOf(nonNull(t.role), func(u userNode) interface{} { return string(u.Role) }),
				"createdAt": fieldOf(nonNull(graphql.String), func(u userNode) interface{} { return formatTimestamp(u.CreatedAt) }),
				"employee": &graphql.Field{
					Type:    t.employee,
					Resolve: r.wrap(r.userEmployee),
				},
			}
		}),
	})

	t.authPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"token":     fieldOf(nonNull(graphql.String), func(p authPayloadNode) interface{} { return p.Token }),
				"expiresAt": fieldOf(nonNull(graphql.String), func(p authPayloadNode) interface{} { return formatTimestamp(p.ExpiresAt) }),
				"user":      fieldOf(nonNull(t.user), func(p authPayloadNode) interface{} { return p.user }),
			}
		}),
	})

	t.employee = graphql.NewObject(graphql.ObjectConfig{
		Name: "Employee",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": fieldOf(nonNull(graphql.Int), func(e employeeNode) interface{} { return int(e.ID) }),
				"userId": fieldOf(graphql.Int, func(e employeeNode) interface{} {
					if e.UserID == nil {
						return nil
					}
					return int(*e.UserID)
				}),
				"name":       fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return e.Name }),
				"email":      fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return e.Email }),
				"age":        fieldOf(nonNull(graphql.Int), func(e employeeNode) interface{} { return e.Age }),
				"class":      fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return e.Class }),
				"subjects":   fieldOf(listOf(graphql.String), func(e employeeNode) interface{} { return nonNilStrings(e.Subjects) }),
				"department": fieldOf(graphql.String, func(e employeeNode) interface{} { return nullableString(e.Department) }),
				"position":   fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return e.Position }),
				"avatar":     fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return e.Avatar }),
				"phone":      fieldOf(graphql.String, func(e employeeNode) interface{} { return nullableString(e.Phone) }),
				"address":    fieldOf(graphql.String, func(e employeeNode) interface{} { return nullableString(e.Address) }),
				"joinDate":   fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return formatDate(e.JoinDate) }),
				"salary": fieldOf(graphql.Float, func(e employeeNode) interface{} {
					if e.Salary == nil {
						return nil
					}
					return e.Salary.InexactFloat64()
				}),
				"flagged":   fieldOf(nonNull(graphql.Boolean), func(e employeeNode) interface{} { return e.Flagged }),
				"createdAt": fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return formatTimestamp(e.CreatedAt) }),
				"updatedAt": fieldOf(nonNull(graphql.String), func(e employeeNode) interface{} { return formatTimestamp(e.UpdatedAt) }),
				"tasks": &graphql.Field{
					Type:    listOf(t.task),
					Resolve: r.wrap(r.employeeTasks),
				},
				"attendance": &graphql.Field{
					Type:    listOf(t.record),
					Resolve: r.wrap(r.employeeAttendance),
				},
			}
		}),
	})

	t.task = graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          fieldOf(nonNull(graphql.Int), func(k taskNode) interface{} { return int(k.ID) }),
				"title":       fieldOf(nonNull(graphql.String), func(k taskNode) interface{} { return k.Title }),
				"description": fieldOf(graphql.String, func(k taskNode) interface{} { return nullableString(k.Description) }),
				"completed":   fieldOf(nonNull(graphql.Boolean), func(k taskNode) interface{} { return k.Completed }),
				"priority":    fieldOf(nonNull(graphql.String), func(k taskNode) interface{} { return string(k.Priority) }),
				"dueDate":     fieldOf(graphql.String, func(k taskNode) interface{} { return nullableDate(k.DueDate) }),
				"employeeId":  fieldOf(nonNull(graphql.Int), func(k taskNode) interface{} { return int(k.EmployeeID) }),
				"createdAt":   fieldOf(nonNull(graphql.String), func(k taskNode) interface{} { return formatTimestamp(k.CreatedAt) }),
				"updatedAt":   fieldOf(nonNull(graphql.String), func(k taskNode) interface{} { return formatTimestamp(k.UpdatedAt) }),
				"employee": &graphql.Field{
					Type:    nonNull(t.employee),
					Resolve: r.wrap(r.taskEmployee),
				},
			}
		}),
	})

	t.record = graphql.NewObject(graphql.ObjectConfig{
		Name: "AttendanceRecord",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":         fieldOf(nonNull(graphql.Int), func(a recordNode) interface{} { return int(a.ID) }),
				"employeeId": fieldOf(nonNull(graphql.Int), func(a recordNode) interface{} { return int(a.EmployeeID) }),
				"date":       fieldOf(nonNull(graphql.String), func(a recordNode) interface{} { return formatDate(a.Date) }),
				"status":     fieldOf(nonNull(t.attendanceStatus), func(a recordNode) interface{} { return string(a.Status) }),
				"checkIn":    fieldOf(graphql.String, func(a recordNode) interface{} { return nullableTimestamp(a.CheckIn) }),
				"checkOut":   fieldOf(graphql.String, func(a recordNode) interface{} { return nullableTimestamp(a.CheckOut) }),
				"notes":      fieldOf(graphql.String, func(a recordNode) interface{} { return nullableString(a.Notes) }),
				"createdAt":  fieldOf(nonNull(graphql.String), func(a recordNode) interface{} { return formatTimestamp(a.CreatedAt) }),
				"employee": &graphql.Field{
					Type:    nonNull(t.employee),
					Resolve: r.wrap(r.recordEmployee),
				},
			}
		}),
	})

	t.connection = graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeeConnection",
		Fields: graphql.Fields{
			"edges":       fieldOf(listOf(t.employee), func(c connectionNode) interface{} { return c.edges }),
			"totalCount":  fieldOf(nonNull(graphql.Int), func(c connectionNode) interface{} { return int(c.TotalCount) }),
			"hasNextPage": fieldOf(nonNull(graphql.Boolean), func(c connectionNode) interface{} { return c.HasNextPage }),
		},
	})

	t.employeeFilter = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"department": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"position":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"class":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"flagged":    &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
	t.employeeSort = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeSortInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"field": &graphql.InputObjectFieldConfig{Type: nonNull(graphql.String)},
			"order": &graphql.InputObjectFieldConfig{Type: nonNull(graphql.String)},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    t.query(r),
		Mutation: t.mutation(r),
	})
}

func (t *schemaTypes) query(r *Resolver) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    t.user,
				Resolve: r.wrap(r.me),
			},
			"employees": &graphql.Field{
				Type: nonNull(t.connection),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
					"filter": &graphql.ArgumentConfig{Type: t.employeeFilter},
					"sort":   &graphql.ArgumentConfig{Type: t.employeeSort},
				},
				Resolve: r.wrap(r.employees),
			},
			"employee": &graphql.Field{
				Type:    t.employee,
				Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)}},
				Resolve: r.wrap(r.employee),
			},
			"tasks": &graphql.Field{
				Type: listOf(t.task),
				Args: graphql.FieldConfigArgument{
					"employeeId": &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int},
					"offset":     &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.wrap(r.tasks),
			},
			"task": &graphql.Field{
				Type:    t.task,
				Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)}},
				Resolve: r.wrap(r.task),
			},
			"attendance": &graphql.Field{
				Type: listOf(t.record),
				Args: graphql.FieldConfigArgument{
					"employeeId": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"startDate":  &graphql.ArgumentConfig{Type: graphql.String},
					"endDate":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.wrap(r.attendanceRecords),
			},
		},
	})
}

func (t *schemaTypes) mutation(r *Resolver) *graphql.Object {
	clearList := &graphql.ArgumentConfig{
		Type:        graphql.NewList(nonNull(graphql.String)),
		Description: "Nullable fields to set to null.",
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: nonNull(t.authPayload),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"role":     &graphql.ArgumentConfig{Type: t.role},
				},
				Resolve: r.wrap(r.register),
			},
			"login": &graphql.Field{
				Type: nonNull(t.authPayload),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
				},
				Resolve: r.wrap(r.login),
			},
			"addEmployee": &graphql.Field{
				Type: nonNull(t.employee),
				Args: graphql.FieldConfigArgument{
					"name":       &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"email":      &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"age":        &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"class":      &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"subjects":   &graphql.ArgumentConfig{Type: listOf(graphql.String)},
					"department": &graphql.ArgumentConfig{Type: graphql.String},
					"position":   &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"avatar":     &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"phone":      &graphql.ArgumentConfig{Type: graphql.String},
					"address":    &graphql.ArgumentConfig{Type: graphql.String},
					"joinDate":   &graphql.ArgumentConfig{Type: graphql.String},
					"salary":     &graphql.ArgumentConfig{Type: graphql.Float},
					"userId":     &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.wrap(r.addEmployee),
			},
			"updateEmployee": &graphql.Field{
				Type: nonNull(t.employee),
				Args: graphql.FieldConfigArgument{
					"id":         &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"name":       &graphql.ArgumentConfig{Type: graphql.String},
					"age":        &graphql.ArgumentConfig{Type: graphql.Int},
					"class":      &graphql.ArgumentConfig{Type: graphql.String},
					"subjects":   &graphql.ArgumentConfig{Type: graphql.NewList(nonNull(graphql.String))},
					"department": &graphql.ArgumentConfig{Type: graphql.String},
					"position":   &graphql.ArgumentConfig{Type: graphql.String},
					"avatar":     &graphql.ArgumentConfig{Type: graphql.String},
					"phone":      &graphql.ArgumentConfig{Type: graphql.String},
					"address":    &graphql.ArgumentConfig{Type: graphql.String},
					"salary":     &graphql.ArgumentConfig{Type: graphql.Float},
					"clear":      clearList,
				},
				Resolve: r.wrap(r.updateEmployee),
			},
			"deleteEmployee": &graphql.Field{
				Type:    nonNull(t.employee),
				Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)}},
				Resolve: r.wrap(r.deleteEmployee),
			},
			"flagEmployee": &graphql.Field{
				Type: nonNull(t.employee),
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"flagged": &graphql.ArgumentConfig{Type: nonNull(graphql.Boolean)},
				},
				Resolve: r.wrap(r.flagEmployee),
			},
			"addTask": &graphql.Field{
				Type: nonNull(t.task),
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"completed":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"priority":    &graphql.ArgumentConfig{Type: graphql.String},
					"dueDate":     &graphql.ArgumentConfig{Type: graphql.String},
					"employeeId":  &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
				},
				Resolve: r.wrap(r.addTask),
			},
			"updateTask": &graphql.Field{
				Type: nonNull(t.task),
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"completed":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"priority":    &graphql.ArgumentConfig{Type: graphql.String},
					"dueDate":     &graphql.ArgumentConfig{Type: graphql.String},
					"clear":       clearList,
				},
				Resolve: r.wrap(r.updateTask),
			},
			"deleteTask": &graphql.Field{
				Type:    nonNull(t.task),
				Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)}},
				Resolve: r.wrap(r.deleteTask),
			},
			"recordAttendance": &graphql.Field{
				Type: nonNull(t.record),
				Args: graphql.FieldConfigArgument{
					"employeeId": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"date":       &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"status":     &graphql.ArgumentConfig{Type: nonNull(t.attendanceStatus)},
					"checkIn":    &graphql.ArgumentConfig{Type: graphql.String},
					"checkOut":   &graphql.ArgumentConfig{Type: graphql.String},
					"notes":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.wrap(r.recordAttendance),
			},
		},
	})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
