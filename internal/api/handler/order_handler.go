package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// OrderHandler serves order history for clients and the order board for
// administrators.
type OrderHandler struct {
	orders ports.OrderAPI
}

func NewOrderHandler(orders ports.OrderAPI) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PREPARING READY DELIVERED CANCELLED"`
}

// Mine handles GET /client/orders.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /client/orders [get]
func (h *OrderHandler) Mine(c echo.Context) error {
	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.MyOrders(c.Request().Context(), bearer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// List handles GET /admin/orders.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.Orders(c.Request().Context(), bearer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /admin/orders/:id/status.
//
// @Summary      Move an order to a new status
// @Tags         orders
// @Accept       json
// @Param        id    path  string               true  "Order id"
// @Param        body  body  updateStatusRequest  true  "Target status"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	err = h.orders.UpdateOrderStatus(c.Request().Context(), bearer, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
