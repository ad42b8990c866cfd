package domain

// Role is the closed set of actor roles the gateway distinguishes.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
	// RoleUnknown means no role could be derived yet (claims absent and the
	// authoritative profile has not resolved).
	RoleUnknown Role = ""
)

// ParseRole maps an untrusted role string to the closed enumeration.
// Anything that is not exactly ADMIN or CLIENT is unknown.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleClient):
		return RoleClient
	default:
		return RoleUnknown
	}
}

// HomePath returns the canonical landing path for a role. Every role that is
// not ADMIN lands on the client home.
func (r Role) HomePath() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/client"
}

// Known reports whether the role has been derived from claims or profile.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleClient
}
