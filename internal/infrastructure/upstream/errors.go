package upstream

import (
	"strings"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// classify maps an ordering-API error message to a domain kind. This is the
// single place message text is inspected; everything above the boundary
// works with kinds.
func classify(message string) domain.Kind {
	msg := strings.ToLower(message)

	switch {
	case contains(msg, "invalid credentials", "invalid email or password", "wrong password", "invalid password"):
		return domain.KindCredentialInvalid
	case contains(msg, "not confirmed", "confirm your email", "unconfirmed"):
		return domain.KindEmailUnconfirmed
	case contains(msg, "locked"):
		return domain.KindAccountLocked
	case contains(msg, "already registered", "already exists", "already in use", "duplicate"):
		return domain.KindDuplicateRegistration
	case contains(msg, "token expired", "invalid token", "token invalid", "expired token",
		"unauthorized", "unauthenticated", "not authenticated", "jwt"):
		return domain.KindTokenInvalid
	case contains(msg, "forbidden", "not allowed", "permission"):
		return domain.KindForbidden
	case contains(msg, "not found"):
		return domain.KindNotFound
	case contains(msg, "validation", "must be at least", "is required"):
		return domain.KindValidation
	default:
		return domain.KindInternal
	}
}

func contains(msg string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
