package ports

import (
	"context"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// SessionResolver produces the unified session view for a browser session.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (domain.Session, error)
	// Refetch drops the memoized profile and resolves again. Callers that
	// mutate server-side profile state use it to resynchronize.
	Refetch(ctx context.Context, sessionID string) (domain.Session, error)
}

// CartService accumulates the working selection of menu line items.
type CartService interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	AddItem(ctx context.Context, sessionID, menuItemID string) (domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, menuItemID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// CheckoutService runs the strict order → payment → handoff sequence.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID, bearer string) (*domain.PaymentHandoff, error)
}

// CompensationQueue accepts best-effort cancellations for orders whose
// payment initiation failed.
type CompensationQueue interface {
	Enqueue(orderID, bearer string)
}
