package service

import (
	"slices"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// Decision is the route guard's verdict for one navigation attempt.
type Decision int

const (
	// DecisionAllow renders the requested content.
	DecisionAllow Decision = iota
	// DecisionLogin redirects to login: no token in the store.
	DecisionLogin
	// DecisionClearAndLogin redirects to login after clearing the token
	// store: the token exists but the authoritative fetch has definitively
	// rejected it.
	DecisionClearAndLogin
	// DecisionWait renders a waiting state: the authoritative fetch is still
	// pending and no role is derivable yet.
	DecisionWait
	// DecisionRoleHome redirects to the canonical home of the session's
	// actual role: a role is derivable but not in the route's allowlist.
	DecisionRoleHome
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionLogin:
		return "login"
	case DecisionClearAndLogin:
		return "clear_and_login"
	case DecisionWait:
		return "wait"
	case DecisionRoleHome:
		return "role_home"
	default:
		return "unknown"
	}
}

// EvaluateGuard runs the route-guard state machine for one request. It is
// pure: evaluated on every request, idempotent, side-effect-free. An empty
// allowed list means any derivable role may pass.
//
// The returned role accompanies DecisionRoleHome so the caller can redirect
// to that role's home.
func EvaluateGuard(sess domain.Session, allowed []domain.Role) (Decision, domain.Role) {
	if !sess.Authenticated() {
		return DecisionLogin, domain.RoleUnknown
	}
	if sess.Invalid {
		return DecisionClearAndLogin, domain.RoleUnknown
	}
	if sess.IsLoading && !sess.Role.Known() {
		return DecisionWait, domain.RoleUnknown
	}
	if sess.Role.Known() && len(allowed) > 0 && !slices.Contains(allowed, sess.Role) {
		return DecisionRoleHome, sess.Role
	}
	return DecisionAllow, sess.Role
}
