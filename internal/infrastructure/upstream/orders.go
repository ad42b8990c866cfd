package upstream

import (
	"context"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

const (
	ordersQuery = `query GetOrders {
  orders { id items { menuItemId name quantity price } total status createdAt }
}`

	myOrdersQuery = `query GetMyOrders {
  myOrders { id items { menuItemId name quantity price } total status createdAt }
}`

	createOrderMutation = `mutation CreateOrder($items: [CreateOrderItemInput!]!) {
  createOrder(items: $items) { id order { id total status } }
}`

	updateOrderStatusMutation = `mutation UpdateOrderStatus($id: String!, $status: String!) {
  updateOrderStatus(id: $id, status: $status) { ok }
}`

	createPaymentMutation = `mutation CreatePayment($amount: Float!, $buyOrder: String!, $sessionId: String!) {
  createPayment(amount: $amount, buyOrder: $buyOrder, sessionId: $sessionId) { success url token }
}`
)

type orderItemPayload struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type orderPayload struct {
	ID        string             `json:"id"`
	Items     []orderItemPayload `json:"items"`
	Total     float64            `json:"total"`
	Status    string             `json:"status"`
	CreatedAt float64            `json:"createdAt"`
}

func (p orderPayload) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, domain.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}
	return domain.Order{
		ID:        p.ID,
		Items:     items,
		Total:     p.Total,
		Status:    domain.OrderStatus(p.Status),
		CreatedAt: unixTime(p.CreatedAt),
	}
}

// Orders lists every order; admins only, enforced upstream.
func (c *Client) Orders(ctx context.Context, bearer string) ([]domain.Order, error) {
	var out struct {
		Orders []orderPayload `json:"orders"`
	}
	if err := c.do(ctx, bearer, "GetOrders", ordersQuery, nil, &out); err != nil {
		return nil, err
	}
	return toOrders(out.Orders), nil
}

// MyOrders lists the caller's own orders.
func (c *Client) MyOrders(ctx context.Context, bearer string) ([]domain.Order, error) {
	var out struct {
		Orders []orderPayload `json:"myOrders"`
	}
	if err := c.do(ctx, bearer, "GetMyOrders", myOrdersQuery, nil, &out); err != nil {
		return nil, err
	}
	return toOrders(out.Orders), nil
}

func toOrders(payloads []orderPayload) []domain.Order {
	orders := make([]domain.Order, 0, len(payloads))
	for _, p := range payloads {
		orders = append(orders, p.toDomain())
	}
	return orders
}

// CreateOrder submits a draft. The returned total is the server-computed
// amount, which callers must treat as authoritative.
func (c *Client) CreateOrder(ctx context.Context, bearer string, draft domain.OrderDraft) (*ports.CreatedOrder, error) {
	items := make([]map[string]any, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, map[string]any{"menuItemId": it.MenuItemID, "quantity": it.Quantity})
	}

	var out struct {
		CreateOrder struct {
			ID    string `json:"id"`
			Order struct {
				ID     string  `json:"id"`
				Total  float64 `json:"total"`
				Status string  `json:"status"`
			} `json:"order"`
		} `json:"createOrder"`
	}
	if err := c.do(ctx, bearer, "CreateOrder", createOrderMutation, map[string]any{"items": items}, &out); err != nil {
		return nil, err
	}

	created := out.CreateOrder
	id := created.Order.ID
	if id == "" {
		id = created.ID
	}
	return &ports.CreatedOrder{
		ID:     id,
		Total:  created.Order.Total,
		Status: domain.OrderStatus(created.Order.Status),
	}, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, bearer, id string, status domain.OrderStatus) error {
	vars := map[string]any{"id": id, "status": string(status)}
	return c.do(ctx, bearer, "UpdateOrderStatus", updateOrderStatusMutation, vars, nil)
}

// CreatePayment requests a payment-initiation record for an order.
func (c *Client) CreatePayment(ctx context.Context, bearer string, input ports.PaymentInput) (*domain.PaymentHandoff, error) {
	var out struct {
		CreatePayment struct {
			Success bool   `json:"success"`
			URL     string `json:"url"`
			Token   string `json:"token"`
		} `json:"createPayment"`
	}
	vars := map[string]any{
		"amount":    input.Amount,
		"buyOrder":  input.BuyOrder,
		"sessionId": input.SessionID,
	}
	if err := c.do(ctx, bearer, "CreatePayment", createPaymentMutation, vars, &out); err != nil {
		return nil, err
	}
	if !out.CreatePayment.Success || out.CreatePayment.URL == "" || out.CreatePayment.Token == "" {
		return nil, domain.NewError(domain.KindPaymentRejected, "payment provider declined initiation")
	}
	return &domain.PaymentHandoff{
		RedirectURL: out.CreatePayment.URL,
		Token:       out.CreatePayment.Token,
	}, nil
}
