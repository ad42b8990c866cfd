package ports

import (
	"context"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// TokenStore holds the upstream bearer token for one browser session,
// together with the optionally remembered login email. It is the only
// credential state the gateway keeps.
type TokenStore interface {
	// Get returns the stored token, or "" when absent. Absence is not an
	// error.
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, token string) error
	// Clear removes the token. Called on logout, on a definitively invalid
	// session, and after account deletion.
	Clear(ctx context.Context, sessionID string) error

	RememberEmail(ctx context.Context, sessionID, email string) error
	RememberedEmail(ctx context.Context, sessionID string) (string, error)
}

// CartStore persists the working cart per browser session.
type CartStore interface {
	// Get returns the cart; a session with no cart yields an empty cart.
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// ProfileCache memoizes the authoritative profile fetch per session. Entries
// expire on their own; Invalidate drops one eagerly after a profile-mutating
// call.
type ProfileCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Profile, bool, error)
	Set(ctx context.Context, sessionID string, profile domain.Profile) error
	Invalidate(ctx context.Context, sessionID string) error
}
