package models

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a stored or claimed role string back onto the enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID uint
	Role   Role
}

// Can reports whether the identity holds role.
func (id Identity) Can(role Role) bool {
	return id.UserID != 0 && id.Role == role
}
