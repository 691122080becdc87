package user

type Permission string

const (
	PermissionComplexView   Permission = "complex.view"
	PermissionComplexManage Permission = "complex.manage"

	PermissionCourtView   Permission = "court.view"
	PermissionCourtManage Permission = "court.manage"

	PermissionProductView   Permission = "product.view"
	PermissionProductManage Permission = "product.manage"

	PermissionClientView   Permission = "client.view"
	PermissionClientManage Permission = "client.manage"

	PermissionReservationView   Permission = "reservation.view"
	PermissionReservationManage Permission = "reservation.manage"

	PermissionTabView   Permission = "tab.view"
	PermissionTabManage Permission = "tab.manage"

	PermissionNotificationView Permission = "notification.view"

	PermissionStaffView    Permission = "staff.view"
	PermissionStaffApprove Permission = "staff.approve"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionComplexView,
		PermissionComplexManage,
		PermissionNotificationView,
		PermissionStaffView,
		PermissionStaffApprove,
	},
	RoleAdmin: {
		PermissionComplexView,
		PermissionComplexManage,
		PermissionCourtView,
		PermissionCourtManage,
		PermissionProductView,
		PermissionProductManage,
		PermissionClientView,
		PermissionClientManage,
		PermissionReservationView,
		PermissionReservationManage,
		PermissionTabView,
		PermissionTabManage,
		PermissionNotificationView,
		PermissionStaffView,
	},
	RoleEmployee: {
		PermissionComplexView,
		PermissionCourtView,
		PermissionProductView,
		PermissionClientView,
		PermissionClientManage,
		PermissionReservationView,
		PermissionReservationManage,
		PermissionTabView,
		PermissionTabManage,
		PermissionNotificationView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
