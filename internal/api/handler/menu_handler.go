package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// MenuHandler serves the menu to clients and the CRUD surface to admins.
type MenuHandler struct {
	catalog ports.CatalogAPI
}

func NewMenuHandler(catalog ports.CatalogAPI) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

type createMenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty"`
}

// List handles GET /client/menu and GET /admin/menu. Admins read the same
// catalog they manage through the CRUD surface.
//
// @Summary      List the menu
// @Tags         menu
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /client/menu [get]
// @Router       /admin/menu [get]
func (h *MenuHandler) List(c echo.Context) error {
	menu, err := h.catalog.Menu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// Create handles POST /admin/menu.
//
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body      createMenuItemRequest  true  "Dish details"
// @Success      201   {object}  map[string]string
// @Router       /admin/menu [post]
func (h *MenuHandler) Create(c echo.Context) error {
	var req createMenuItemRequest
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

	id, err := h.catalog.CreateMenuItem(c.Request().Context(), bearer, ports.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// Update handles PUT /admin/menu/:id.
//
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Param        id    path  string                 true  "Menu item id"
// @Param        body  body  updateMenuItemRequest  true  "Fields to change"
// @Success      204
// @Router       /admin/menu/{id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	var req updateMenuItemRequest
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

	err = h.catalog.UpdateMenuItem(c.Request().Context(), bearer, c.Param("id"), ports.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /admin/menu/:id.
//
// @Summary      Delete a menu item
// @Tags         menu
// @Param        id  path  string  true  "Menu item id"
// @Success      204
// @Router       /admin/menu/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteMenuItem(c.Request().Context(), bearer, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
