package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// CartHandler exposes the session's working cart.
type CartHandler struct {
	carts ports.CartService
}

func NewCartHandler(carts ports.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
}

type clearCartRequest struct {
	// Confirm acknowledges the destructive action; clearing the whole cart
	// requires the caller to have shown a confirmation step.
	Confirm bool `json:"confirm"`
}

type cartResponse struct {
	Lines []domain.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	return cartResponse{Lines: cart.Lines, Total: cart.Total()}
}

// Get handles GET /client/cart.
//
// @Summary      Get the working cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /client/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.carts.Get(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /client/cart/items.
//
// @Summary      Add one unit of a menu item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Menu item reference"
// @Success      200   {object}  cartResponse
// @Failure      404   {object}  map[string]string
// @Router       /client/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.carts.AddItem(c.Request().Context(), middleware.SessionID(c), req.MenuItemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /client/cart/items/:id — one unit at a time; the
// line disappears when its quantity reaches zero.
//
// @Summary      Remove one unit of a menu item
// @Tags         cart
// @Produce      json
// @Param        id  path  string  true  "Menu item id"
// @Success      200  {object}  cartResponse
// @Router       /client/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.carts.RemoveItem(c.Request().Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /client/cart. Clearing everything is destructive and
// must carry the confirmation flag.
//
// @Summary      Empty the cart
// @Tags         cart
// @Accept       json
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /client/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	var req clearCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if !req.Confirm {
		return domain.NewError(domain.KindValidation, "clearing the cart requires confirmation")
	}

	if err := h.carts.Clear(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
