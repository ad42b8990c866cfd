package upstream

import (
	"context"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

const (
	menuQuery = `query GetMenu {
  menu { id name description price category }
}`

	createMenuItemMutation = `mutation CreateMenuItem($name: String!, $description: String!, $price: Float!, $category: String!) {
  createMenuItem(name: $name, description: $description, price: $price, category: $category) { id item { name } }
}`

	updateMenuItemMutation = `mutation UpdateMenuItem($id: String!, $name: String, $description: String, $price: Float, $category: String) {
  updateMenuItem(id: $id, name: $name, description: $description, price: $price, category: $category) { ok }
}`

	deleteMenuItemMutation = `mutation DeleteMenuItem($id: String!) {
  deleteMenuItem(id: $id) { ok }
}`
)

// Menu lists the restaurant menu. The listing needs no authentication.
func (c *Client) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	var out struct {
		Menu []domain.MenuItem `json:"menu"`
	}
	if err := c.do(ctx, "", "GetMenu", menuQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

// CreateMenuItem adds a dish and returns its id.
func (c *Client) CreateMenuItem(ctx context.Context, bearer string, input ports.MenuItemInput) (string, error) {
	var out struct {
		CreateMenuItem struct {
			ID string `json:"id"`
		} `json:"createMenuItem"`
	}
	vars := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"category":    input.Category,
	}
	if err := c.do(ctx, bearer, "CreateMenuItem", createMenuItemMutation, vars, &out); err != nil {
		return "", err
	}
	return out.CreateMenuItem.ID, nil
}

// UpdateMenuItem applies a partial update; only non-nil fields are sent.
func (c *Client) UpdateMenuItem(ctx context.Context, bearer, id string, update ports.MenuItemUpdate) error {
	vars := map[string]any{"id": id}
	if update.Name != nil {
		vars["name"] = *update.Name
	}
	if update.Description != nil {
		vars["description"] = *update.Description
	}
	if update.Price != nil {
		vars["price"] = *update.Price
	}
	if update.Category != nil {
		vars["category"] = *update.Category
	}
	return c.do(ctx, bearer, "UpdateMenuItem", updateMenuItemMutation, vars, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, bearer, id string) error {
	return c.do(ctx, bearer, "DeleteMenuItem", deleteMenuItemMutation, map[string]any{"id": id}, nil)
}
