package fixtures

import (
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	t = t.UTC()
	return &t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

// ==========================================
// DEMO ACCOUNTS
// ==========================================

type DemoUser struct {
	Email    string
	Password string
	Role     user.Role
}

var (
	AdminUser    = DemoUser{Email: "admin@datavista.com", Password: "admin123", Role: user.RoleAdmin}
	EmployeeUser = DemoUser{Email: "employee@datavista.com", Password: "employee123", Role: user.RoleEmployee}
)

// ==========================================
// DEMO EMPLOYEES
// ==========================================

type DemoEmployee struct {
	// LinkedToEmployeeUser links the profile to EmployeeUser
	LinkedToEmployeeUser bool
	Name                 string
	Email                string
	Age                  int
	Class                string
	Subjects             []string
	Department           string
	Position             string
	Avatar               string
	Phone                string
	Address              string
	Salary               decimal.Decimal
	Flagged              bool
	Tasks                []task.Task
	Attendance           []attendance.Record
}

// DemoEmployees returns the six demo profiles with their tasks and attendance.
func DemoEmployees() []DemoEmployee {
	return []DemoEmployee{
		{
			LinkedToEmployeeUser: true,
			Name:                 "Sarah Johnson",
			Email:                "sarah.johnson@datavista.com",
			Age:                  28,
			Class:                "Senior",
			Subjects:             []string{"TypeScript", "React", "Node.js", "GraphQL"},
			Department:           "Engineering",
			Position:             "Senior Software Engineer",
			Avatar:               "https://i.pravatar.cc/150?img=1",
			Phone:                "+1-555-0101",
			Address:              "123 Tech Street, San Francisco, CA",
			Salary:               decimal.NewFromInt(125000),
			Tasks: []task.Task{
				{Title: "Implement authentication system", Description: strPtr("Set up JWT-based authentication with role-based access control"), Completed: true, Priority: task.PriorityHigh, DueDate: datePtr("2024-11-15")},
				{Title: "Code review PR #456", Description: strPtr("Review and approve pending pull request for new features"), Priority: task.PriorityMedium, DueDate: datePtr("2024-12-10")},
				{Title: "Optimize database queries", Description: strPtr("Improve performance by adding indexes and optimizing queries"), Priority: task.PriorityHigh, DueDate: datePtr("2024-12-05")},
			},
			Attendance: []attendance.Record{
				{Date: date("2024-11-25"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-25T09:00:00"), CheckOut: clock("2024-11-25T17:30:00")},
				{Date: date("2024-11-26"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-26T08:45:00"), CheckOut: clock("2024-11-26T17:15:00")},
				{Date: date("2024-11-27"), Status: attendance.StatusLate, CheckIn: clock("2024-11-27T10:30:00"), CheckOut: clock("2024-11-27T18:00:00"), Notes: strPtr("Medical appointment in morning")},
			},
		},
		{
			Name:       "Michael Chen",
			Email:      "michael.chen@datavista.com",
			Age:        35,
			Class:      "Principal",
			Subjects:   []string{"Product Strategy", "Agile", "Leadership", "Analytics"},
			Department: "Product",
			Position:   "Product Manager",
			Avatar:     "https://i.pravatar.cc/150?img=2",
			Phone:      "+1-555-0102",
			Address:    "456 Innovation Ave, San Francisco, CA",
			Salary:     decimal.NewFromInt(140000),
			Tasks: []task.Task{
				{Title: "Q1 Product Roadmap", Description: strPtr("Define and prioritize features for Q1 2025"), Priority: task.PriorityHigh, DueDate: datePtr("2024-12-15")},
				{Title: "Stakeholder Presentation", Description: strPtr("Present new features to executive team"), Completed: true, Priority: task.PriorityHigh, DueDate: datePtr("2024-11-20")},
			},
			Attendance: []attendance.Record{
				{Date: date("2024-11-25"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-25T09:15:00"), CheckOut: clock("2024-11-25T18:00:00")},
				{Date: date("2024-11-26"), Status: attendance.StatusLeave, Notes: strPtr("Planned vacation")},
			},
		},
		{
			Name:       "Emily Rodriguez",
			Email:      "emily.rodriguez@datavista.com",
			Age:        26,
			Class:      "Mid-Level",
			Subjects:   []string{"UI Design", "UX Research", "Figma", "Prototyping"},
			Department: "Design",
			Position:   "UX Designer",
			Avatar:     "https://i.pravatar.cc/150?img=3",
			Phone:      "+1-555-0103",
			Address:    "789 Creative Blvd, San Francisco, CA",
			Salary:     decimal.NewFromInt(95000),
			Flagged:    true,
			Tasks: []task.Task{
				{Title: "Dashboard Redesign", Description: strPtr("Create modern wireframes for analytics dashboard"), Priority: task.PriorityMedium, DueDate: datePtr("2024-12-20")},
				{Title: "User Research Study", Description: strPtr("Conduct interviews with 10 users about new features"), Priority: task.PriorityHigh, DueDate: datePtr("2024-12-08")},
			},
			Attendance: []attendance.Record{
				{Date: date("2024-11-25"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-25T09:00:00"), CheckOut: clock("2024-11-25T17:00:00")},
			},
		},
		{
			Name:       "David Park",
			Email:      "david.park@datavista.com",
			Age:        32,
			Class:      "Senior",
			Subjects:   []string{"Python", "Machine Learning", "Statistics", "TensorFlow"},
			Department: "Data Science",
			Position:   "Data Scientist",
			Avatar:     "https://i.pravatar.cc/150?img=4",
			Phone:      "+1-555-0104",
			Address:    "321 Data Drive, San Francisco, CA",
			Salary:     decimal.NewFromInt(135000),
			Tasks: []task.Task{
				{Title: "ML Model Training", Description: strPtr("Improve prediction model accuracy to 95%+"), Priority: task.PriorityHigh, DueDate: datePtr("2024-12-12")},
				{Title: "Monthly Analytics Report", Description: strPtr("Generate and present November analytics"), Completed: true, Priority: task.PriorityMedium, DueDate: datePtr("2024-11-30")},
			},
			Attendance: []attendance.Record{
				{Date: date("2024-11-25"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-25T08:30:00"), CheckOut: clock("2024-11-25T17:45:00")},
				{Date: date("2024-11-26"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-26T09:00:00"), CheckOut: clock("2024-11-26T18:00:00")},
			},
		},
		{
			Name:       "Jessica Williams",
			Email:      "jessica.williams@datavista.com",
			Age:        30,
			Class:      "Senior",
			Subjects:   []string{"Marketing Strategy", "SEO", "Content Marketing", "Analytics"},
			Department: "Marketing",
			Position:   "Marketing Director",
			Avatar:     "https://i.pravatar.cc/150?img=5",
			Phone:      "+1-555-0105",
			Address:    "654 Marketing Lane, San Francisco, CA",
			Salary:     decimal.NewFromInt(115000),
			Tasks: []task.Task{
				{Title: "Q4 Campaign Launch", Description: strPtr("Coordinate and execute end-of-year marketing campaign"), Priority: task.PriorityHigh, DueDate: datePtr("2024-12-18")},
				{Title: "Social Media Strategy", Description: strPtr("Develop 2025 social media content calendar"), Priority: task.PriorityLow, DueDate: datePtr("2024-12-22")},
			},
			Attendance: []attendance.Record{
				{Date: date("2024-11-25"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-25T09:00:00"), CheckOut: clock("2024-11-25T17:30:00")},
				{Date: date("2024-11-26"), Status: attendance.StatusAbsent, Notes: strPtr("Sick leave")},
			},
		},
		{
			Name:       "Alex Thompson",
			Email:      "alex.thompson@datavista.com",
			Age:        24,
			Class:      "Junior",
			Subjects:   []string{"JavaScript", "HTML", "CSS", "React"},
			Department: "Engineering",
			Position:   "Frontend Developer",
			Avatar:     "https://i.pravatar.cc/150?img=6",
			Phone:      "+1-555-0106",
			Address:    "987 Code Street, San Francisco, CA",
			Salary:     decimal.NewFromInt(85000),
			Tasks: []task.Task{
				{Title: "Build responsive components", Description: strPtr("Create reusable UI components for the design system"), Priority: task.PriorityMedium, DueDate: datePtr("2024-12-14")},
			},
			Attendance: []attendance.Record{
				{Date: date("2024-11-25"), Status: attendance.StatusPresent, CheckIn: clock("2024-11-25T09:00:00"), CheckOut: clock("2024-11-25T17:00:00")},
			},
		},
	}
}
