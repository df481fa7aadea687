// Package session holds the signed-in identity and its active role.
package session

// Role is a named capability profile controlling which tabs and data a
// user may access.
type Role string

const (
	RoleBroker    Role = "broker"
	RoleBuyer     Role = "buyer"
	RoleHomeowner Role = "homeowner"
	RoleGuest     Role = "guest"
	// RoleTenant appears in notification targeting but no sign-in or
	// role-switch flow currently produces it.
	RoleTenant Role = "tenant"
)

// ValidRole returns true if r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleBroker, RoleBuyer, RoleHomeowner, RoleGuest, RoleTenant:
		return true
	}
	return false
}

// Identity is the domain representation of the signed-in user.
// Guest browsing uses an identity whose role set is just {guest}.
type Identity struct {
	ID             string
	DisplayName    string
	Email          string
	Mobile         string
	Roles          []Role
	ActiveRole     Role // empty before an active role is established
	RememberedRole Role // advisory default, applied on sign-in
}

// HasRole returns true if r is a member of the identity's role set.
func (id Identity) HasRole(r Role) bool {
	for _, have := range id.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Guest returns the identity used for browsing without an account.
func Guest() Identity {
	return Identity{
		ID:          "guest",
		DisplayName: "Guest",
		Roles:       []Role{RoleGuest},
		ActiveRole:  RoleGuest,
	}
}
