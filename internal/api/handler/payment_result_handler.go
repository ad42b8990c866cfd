package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// PaymentResultHandler receives the browser back from the payment provider
// and reports the outcome. The provider's query parameters are echoed as-is;
// when the caller still has a session, the claimed order and amount are
// cross-checked against the caller's own order history.
type PaymentResultHandler struct {
	tokens ports.TokenStore
	orders ports.OrderAPI
	log    zerolog.Logger
}

func NewPaymentResultHandler(tokens ports.TokenStore, orders ports.OrderAPI, log zerolog.Logger) *PaymentResultHandler {
	return &PaymentResultHandler{tokens: tokens, orders: orders, log: log}
}

// Result handles GET /payment/result.
//
// @Summary      Show the payment outcome
// @Tags         checkout
// @Produce      json
// @Param        status         query  string  false  "Provider status"
// @Param        amount         query  number  false  "Charged amount"
// @Param        buy_order      query  string  false  "Order id"
// @Param        token          query  string  false  "Provider token"
// @Param        receipt_id     query  string  false  "Receipt id"
// @Param        response_code  query  string  false  "Provider response code"
// @Param        message        query  string  false  "Provider message"
// @Success      200  {object}  domain.PaymentResult
// @Router       /payment/result [get]
func (h *PaymentResultHandler) Result(c echo.Context) error {
	result := domain.PaymentResult{
		Status:       c.QueryParam("status"),
		BuyOrder:     c.QueryParam("buy_order"),
		Token:        c.QueryParam("token"),
		ReceiptID:    c.QueryParam("receipt_id"),
		ResponseCode: c.QueryParam("response_code"),
		Message:      c.QueryParam("message"),
	}
	if raw := c.QueryParam("amount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			result.Amount = amount
		}
	}

	result.Verified = h.verify(c, result)

	return c.JSON(http.StatusOK, result)
}

// verify cross-checks the provider's claim against the caller's own orders.
// It is best-effort: without a session, or when history is unreachable, the
// result is simply reported unverified.
func (h *PaymentResultHandler) verify(c echo.Context, result domain.PaymentResult) bool {
	if result.BuyOrder == "" {
		return false
	}

	ctx := c.Request().Context()
	bearer, err := h.tokens.Get(ctx, middleware.SessionID(c))
	if err != nil || bearer == "" {
		return false
	}

	orders, err := h.orders.MyOrders(ctx, bearer)
	if err != nil {
		h.log.Warn().Err(err).Str("buy_order", result.BuyOrder).Msg("payment result cross-check unavailable")
		return false
	}

	for _, order := range orders {
		if order.ID != result.BuyOrder {
			continue
		}
		// A claim without an amount cannot be cross-checked, so it
		// stays unverified even when the order id matches.
		if result.Amount <= 0 {
			return false
		}
		return math.Round(order.Total) == math.Round(result.Amount)
	}
	return false
}
