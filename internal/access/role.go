package access

// Role is the authorization level a user holds on a property. It says what
// the user may do, not whether they live there.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleTenant  Role = "tenant"
)

// Status is the invitation lifecycle state of a PropertyAccess row. Only
// active rows grant anything.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusDeclined Status = "declined"
)

// Managers is the required set for most mutations; Everyone additionally
// admits tenants for the read paths that allow them.
var (
	Managers = []Role{RoleOwner, RoleManager}
	Everyone = []Role{RoleOwner, RoleManager, RoleTenant}
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleOwner, RoleManager, RoleTenant:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusActive, StatusDeclined:
		return true
	}
	return false
}

func roleIn(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
