package user

type Permission string

const (
	// Self Management
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Employee Management
	PermissionEmployeeManage     Permission = "employee.manage"
	PermissionEmployeeEditAny    Permission = "employee.edit_any"
	PermissionEmployeeEditSalary Permission = "employee.edit_salary"
	PermissionEmployeeFlag       Permission = "employee.flag"

	// Tasks
	PermissionTaskManageOwn Permission = "task.manage_own"
	PermissionTaskManageAny Permission = "task.manage_any"

	// Attendance Management
	PermissionAttendanceRecord Permission = "attendance.record"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionEditOwnProfile,
		PermissionEmployeeManage,
		PermissionEmployeeEditAny,
		PermissionEmployeeEditSalary,
		PermissionEmployeeFlag,
		PermissionTaskManageOwn,
		PermissionTaskManageAny,
		PermissionAttendanceRecord,
	},
	RoleEmployee: {
		PermissionEditOwnProfile,
		PermissionTaskManageOwn,
	},
}

// Can reports whether the role grants p
func (r Role) Can(p Permission) bool {
	for _, granted := range RolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
