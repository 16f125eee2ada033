package user

type Permission string

const (
	PermissionStaffView Permission = "staff.view"

	// Attendance
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceRecord  Permission = "attendance.record"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Shifts
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Leave
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveApprove Permission = "leave.approve"

	PermissionPuantajView Permission = "puantaj.view"

	// Targets
	PermissionTargetView   Permission = "target.view"
	PermissionTargetManage Permission = "target.manage"

	// Payroll
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollManage Permission = "payroll.manage"
	PermissionPayrollPay    Permission = "payroll.pay"
)

// PermissionSet is a capability set checked by membership.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

var staffPermissions = []Permission{
	PermissionAttendanceRecord,
	PermissionShiftView,
	PermissionLeaveCreate,
	PermissionTargetView,
}

var managerPermissions = append([]Permission{
	PermissionStaffView,
	PermissionAttendanceViewAll,
	PermissionAttendanceCorrect,
	PermissionShiftManage,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionPuantajView,
	PermissionTargetManage,
	PermissionPayrollView,
	PermissionPayrollManage,
}, staffPermissions...)

// RolePermissions maps roles to their capability sets. Only the owner releases money.
var RolePermissions = map[Role]PermissionSet{
	RoleOwner:   NewPermissionSet(append([]Permission{PermissionPayrollPay}, managerPermissions...)...),
	RoleManager: NewPermissionSet(managerPermissions...),
	RoleStaff:   NewPermissionSet(staffPermissions...),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	set, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return set.Has(permission)
}
