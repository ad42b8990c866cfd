package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/api/metrics"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// paymentSessionNamespace seeds the deterministic session reference sent to
// the payment provider, so one order always maps to one session reference.
var paymentSessionNamespace = uuid.MustParse("7b0c2f5e-9d14-4a14-8c7d-2f14b9a5e6c1")

// CheckoutService runs the strict three-step checkout sequence: submit the
// order, initiate payment with the server's total, hand off to the provider.
// Each step is gated on the previous one; the first failure aborts the rest.
type CheckoutService struct {
	carts        ports.CartStore
	orders       ports.OrderAPI
	payments     ports.PaymentAPI
	compensation ports.CompensationQueue
	log          zerolog.Logger
}

func NewCheckoutService(carts ports.CartStore, orders ports.OrderAPI, payments ports.PaymentAPI, compensation ports.CompensationQueue, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		orders:       orders,
		payments:     payments,
		compensation: compensation,
		log:          log,
	}
}

// Checkout submits the session's cart and returns the one-shot payment
// handoff. The cart is cleared only after payment initiation succeeds: on
// any earlier failure it stays intact so the user can retry.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID, bearer string) (*domain.PaymentHandoff, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	created, err := s.orders.CreateOrder(ctx, bearer, cart.Draft())
	if err != nil {
		metrics.CheckoutFailuresTotal.WithLabelValues("order").Inc()
		return nil, domain.WrapError(domain.KindOrderRejected, "order submission failed", err)
	}
	metrics.OrdersSubmittedTotal.Inc()
	s.log.Info().Str("order_id", created.ID).Float64("total", created.Total).Msg("order submitted")

	// The server is authoritative for the amount; the cart total is only a
	// display value.
	handoff, err := s.payments.CreatePayment(ctx, bearer, ports.PaymentInput{
		Amount:    int(math.Round(created.Total)),
		BuyOrder:  created.ID,
		SessionID: PaymentSessionRef(created.ID),
	})
	if err != nil {
		metrics.CheckoutFailuresTotal.WithLabelValues("payment").Inc()
		s.log.Error().Err(err).Str("order_id", created.ID).Msg("payment initiation failed, scheduling order cancellation")
		s.compensation.Enqueue(created.ID, bearer)
		return nil, domain.WrapError(domain.KindPaymentRejected, "payment initiation failed", err)
	}
	metrics.PaymentsInitiatedTotal.Inc()

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The handoff is already committed upstream; a stale cart is the
		// lesser problem.
		s.log.Warn().Err(err).Str("order_id", created.ID).Msg("cart clear failed after payment initiation")
	}

	s.log.Info().Str("order_id", created.ID).Msg("payment handoff issued")
	return handoff, nil
}

// PaymentSessionRef derives the payment session reference from the order id.
// Deterministic: re-initiating payment for the same order reuses the same
// reference.
func PaymentSessionRef(orderID string) string {
	return uuid.NewSHA1(paymentSessionNamespace, []byte(orderID)).String()
}
