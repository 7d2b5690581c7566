// Package auth models the role claim carried by identity-provider session
// tokens as an explicit capability set.
package auth

// Role is the role claim embedded in a verified session token.
type Role string

// Capability is a permission a role grants.
type Capability string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	CapRead     Capability = "read"
	CapWriteOwn Capability = "write-own"
	CapWriteAny Capability = "write-any"
)

// Can reports whether the role grants the capability.
func (r Role) Can(cap Capability) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return cap == CapRead || cap == CapWriteOwn
	default:
		return false
	}
}

// Normalize maps an arbitrary role claim string onto a known role. Anything
// unrecognized degrades to the default user role.
func Normalize(role string) Role {
	switch Role(role) {
	case RoleAdmin, RoleUser:
		return Role(role)
	default:
		return RoleUser
	}
}

// Identity is the authenticated caller attached to a request: the
// identity-provider subject and its normalized role.
type Identity struct {
	Subject string
	Role    Role
}
