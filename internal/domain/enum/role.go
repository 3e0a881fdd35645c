package enum

// Role is the privilege level attached to an allow-listed account.
type Role string

const (
	RoleMaster Role = "master"
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// CanManageAccess reports whether the role may edit the allow-list.
func (r Role) CanManageAccess() bool {
	return r == RoleMaster || r == RoleAdmin
}
