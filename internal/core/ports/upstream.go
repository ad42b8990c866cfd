package ports

import (
	"context"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// RegisterInput carries a new account registration. AdminSecret, when set,
// asks the ordering API to grant the ADMIN role.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	AdminSecret string
}

// MenuItemInput carries a new dish for the admin menu surface.
type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
}

// MenuItemUpdate carries a partial dish update; nil fields are untouched.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

// CreatedOrder is the ordering API's answer to an order submission. Total is
// the server-computed amount, which — not the cart total — feeds payment
// initiation.
type CreatedOrder struct {
	ID     string
	Total  float64
	Status domain.OrderStatus
}

// PaymentInput carries a payment-initiation request: the rounded integer
// amount, the buy-order reference (the order id), and a session reference
// derived deterministically from it.
type PaymentInput struct {
	Amount    int
	BuyOrder  string
	SessionID string
}

// AccountAPI is the remote surface for identity and account lifecycle.
// Operations that act on the caller's own account take the bearer token.
type AccountAPI interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	RequestUnlock(ctx context.Context, email string) (string, error)
	ConfirmUnlock(ctx context.Context, token string) (string, error)

	MyProfile(ctx context.Context, bearer string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, bearer, name string) error
	UpdatePassword(ctx context.Context, bearer, currentPassword, newPassword string) error
	RequestEmailUpdate(ctx context.Context, bearer, password, newEmail string) error
	ConfirmEmailUpdate(ctx context.Context, bearer, token string) error
	DeleteAccount(ctx context.Context, bearer, password string) error
}

// CatalogAPI is the remote surface for the menu.
type CatalogAPI interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, bearer string, input MenuItemInput) (string, error)
	UpdateMenuItem(ctx context.Context, bearer, id string, update MenuItemUpdate) error
	DeleteMenuItem(ctx context.Context, bearer, id string) error
}

// OrderAPI is the remote surface for orders.
type OrderAPI interface {
	// Orders lists every order; the ordering API restricts it to admins.
	Orders(ctx context.Context, bearer string) ([]domain.Order, error)
	// MyOrders lists the caller's own orders.
	MyOrders(ctx context.Context, bearer string) ([]domain.Order, error)
	CreateOrder(ctx context.Context, bearer string, draft domain.OrderDraft) (*CreatedOrder, error)
	UpdateOrderStatus(ctx context.Context, bearer, id string, status domain.OrderStatus) error
}

// PaymentAPI is the remote surface for payment initiation.
type PaymentAPI interface {
	CreatePayment(ctx context.Context, bearer string, input PaymentInput) (*domain.PaymentHandoff, error)
}

// Upstream is the complete remote ordering API contract.
type Upstream interface {
	AccountAPI
	CatalogAPI
	OrderAPI
	PaymentAPI
}
