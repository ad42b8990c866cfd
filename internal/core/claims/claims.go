// Package claims reads the payload of a bearer token without verifying it.
//
// The result is a UX fast path only: it lets the guard pick a role before the
// authoritative profile fetch resolves. It is never a security check — the
// ordering API re-validates the token on every call it receives.
package claims

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

type tokenClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Reader decodes bearer-token payloads best-effort.
type Reader struct {
	parser *jwt.Parser
	log    zerolog.Logger
}

// NewReader builds a Reader. Decode failures are logged at debug level so
// "no role" caused by a broken token stays distinguishable in traces.
func NewReader(log zerolog.Logger) *Reader {
	return &Reader{parser: jwt.NewParser(), log: log}
}

// Decode extracts the claims hint from token. On any failure — malformed
// token, broken base64, invalid JSON — it returns zero claims and false.
// Failure is swallowed, never returned: callers fall back to the
// authoritative fetch.
func (r *Reader) Decode(token string) (domain.Claims, bool) {
	if token == "" {
		return domain.Claims{}, false
	}

	var tc tokenClaims
	if _, _, err := r.parser.ParseUnverified(token, &tc); err != nil {
		r.log.Debug().Err(err).Msg("bearer token claims undecodable")
		return domain.Claims{}, false
	}

	return domain.Claims{Role: tc.Role, Subject: tc.Subject, Email: tc.Email}, true
}
