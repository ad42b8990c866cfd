package domain

import "time"

// Claims is the client-decoded payload of a bearer token. It is untrusted and
// serves only as a fast-path role hint until the authoritative profile fetch
// resolves; it is never an authorization decision by itself.
type Claims struct {
	Role    string `json:"role,omitempty"`
	Subject string `json:"sub,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Profile is the authoritative account view fetched from the ordering API.
type Profile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             Role      `json:"role"`
	IsLocked         bool      `json:"is_locked"`
	IsEmailConfirmed bool      `json:"is_email_confirmed"`
	CreatedAt        time.Time `json:"created_at"`
	OldEmail         string    `json:"old_email,omitempty"`
	NewEmail         string    `json:"new_email,omitempty"`
	EmailChangedAt   time.Time `json:"email_changed_at,omitzero"`
}

// Session is the unified per-request view of an actor. It is derived, never
// persisted: recomputed from the token store, the token's claims, and the
// (possibly cached) authoritative profile on every guarded request.
//
// Invariant: when Token is empty, Role, Profile, IsLoading and Invalid are
// all zero.
type Session struct {
	// Token is the upstream bearer credential. Presence of a value is the
	// only thing "authenticated" means; validity is a separate question.
	Token string
	// Role is the best currently-derivable role: profile first, claims hint
	// second, RoleUnknown when neither has produced one.
	Role Role
	// Profile is set only once the authoritative fetch has resolved.
	Profile *Profile
	// IsLoading is true while a token exists but the authoritative fetch has
	// neither succeeded nor definitively failed.
	IsLoading bool
	// Invalid is true once the authoritative fetch has definitively rejected
	// the token. The guard clears the store and sends the caller to login.
	Invalid bool
}

// Authenticated reports token presence — nothing more.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
