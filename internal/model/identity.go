package model

// Role determines the breadth of row access a capability grants.
type Role string

const (
	// RoleMember may read and update only its own member row.
	RoleMember Role = "member"
	// RoleAdmin may read and update any member row.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Identity is the acting identity derived from a verified capability.
// The zero value is anonymous: no subject, no role.
type Identity struct {
	MemberID int64
	Role     Role
}

// Anonymous returns the identity of a request carrying no valid capability.
func Anonymous() Identity {
	return Identity{}
}

// IsAnonymous reports whether the identity carries no role.
func (i Identity) IsAnonymous() bool {
	return !i.Role.Valid()
}
