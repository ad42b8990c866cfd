package domain

import "time"

// OrderStatus represents the lifecycle state of an order as reported by the
// ordering API.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderDraftItem is a single menu item reference inside an order request.
type OrderDraftItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// OrderDraft is the order request derived from the cart at submission time.
// It is immutable once sent.
type OrderDraft struct {
	Items []OrderDraftItem `json:"items"`
}

// OrderItem is a priced line inside a placed order.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order is a placed order as returned by the ordering API. Total is the
// server-computed amount; the gateway never substitutes its own.
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
