package model

// Role is the closed set of staff roles. Callers must never construct a
// role outside of {super_admin, admin, staff}; Valid exists for boundary
// validation of external input.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// CreatableRoles returns the roles a staff member with the given role may
// assign when provisioning new staff accounts.
func CreatableRoles(current Role) []Role {
	switch current {
	case RoleSuperAdmin:
		return []Role{RoleSuperAdmin, RoleAdmin, RoleStaff}
	case RoleAdmin:
		return []Role{RoleStaff}
	default:
		return nil
	}
}

// CanCreateRole reports whether current may provision an account with target.
func CanCreateRole(current, target Role) bool {
	for _, r := range CreatableRoles(current) {
		if r == target {
			return true
		}
	}
	return false
}

// CanEditRole reports whether current may edit a staff account with target.
// Super admins may edit anyone; admins only staff; staff nobody.
func CanEditRole(current, target Role) bool {
	switch current {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return target == RoleStaff
	}
	return false
}

// CanDeleteRole reports whether current may delete a staff account with
// target. Super admins may delete anyone except another super admin.
func CanDeleteRole(current, target Role) bool {
	switch current {
	case RoleSuperAdmin:
		return target != RoleSuperAdmin
	case RoleAdmin:
		return target == RoleStaff
	}
	return false
}

// IsReadOnly reports whether the role has no write access in the back office.
func IsReadOnly(r Role) bool { return r == RoleStaff }
