package session

import "github.com/pkg/errors"

// Role represents a user's role within a tenant.
type Role string

// Tenant roles, ordered lowest to highest privilege.
const (
	RoleViewer       Role = "viewer"
	RoleDataEntry    Role = "data_entry"
	RoleDataApprover Role = "data_approver"
	RoleTenantAdmin  Role = "tenant_admin"
	RoleSuperAdmin   Role = "super_admin"
)

var roleRanks = map[Role]int{
	RoleViewer:       1,
	RoleDataEntry:    2,
	RoleDataApprover: 3,
	RoleTenantAdmin:  4,
	RoleSuperAdmin:   5,
}

var roleLabels = map[Role]string{
	RoleViewer:       "Viewer",
	RoleDataEntry:    "Data Entry",
	RoleDataApprover: "Data Approver",
	RoleTenantAdmin:  "Admin",
	RoleSuperAdmin:   "Super Admin",
}

// ParseRole validates a raw role claim against the closed enumeration.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if _, ok := roleRanks[role]; !ok {
		return "", errors.Errorf("unknown tenant role %q", raw)
	}
	return role, nil
}

// Rank returns the role's position in the privilege ordering. Unknown roles
// rank below viewer.
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return roleRanks[r] >= roleRanks[other]
}

// IsAdmin reports whether the role is administrative. Only tenant_admin and
// super_admin pass the admin gate.
func (r Role) IsAdmin() bool {
	return r == RoleTenantAdmin || r == RoleSuperAdmin
}

// Label returns the display label for the role.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}
