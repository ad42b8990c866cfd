package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

type stubCartService struct {
	cart    domain.Cart
	cleared bool
	addErr  error
}

func (s *stubCartService) Get(context.Context, string) (domain.Cart, error) {
	return s.cart, nil
}

func (s *stubCartService) AddItem(_ context.Context, _, menuItemID string) (domain.Cart, error) {
	if s.addErr != nil {
		return domain.Cart{}, s.addErr
	}
	s.cart.Add(domain.MenuItem{ID: menuItemID, Name: "Plato", Price: 1000})
	return s.cart, nil
}

func (s *stubCartService) RemoveItem(_ context.Context, _, menuItemID string) (domain.Cart, error) {
	s.cart.Remove(menuItemID)
	return s.cart, nil
}

func (s *stubCartService) Clear(context.Context, string) error {
	s.cleared = true
	return nil
}

func TestCartHandler_AddItemReturnsUpdatedCart(t *testing.T) {
	svc := &stubCartService{}
	h := NewCartHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/client/cart/items", `{"menu_item_id":"m1"}`)
	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Lines) != 1 || resp.Total != 1000 {
		t.Fatalf("unexpected cart: %+v", resp)
	}
}

func TestCartHandler_AddItemRequiresID(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	c, _ := newTestContext(t, http.MethodPost, "/client/cart/items", `{}`)
	err := h.AddItem(c)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCartHandler_AddUnknownItemPropagates(t *testing.T) {
	h := NewCartHandler(&stubCartService{addErr: domain.ErrMenuItemUnknown})

	c, _ := newTestContext(t, http.MethodPost, "/client/cart/items", `{"menu_item_id":"nope"}`)
	err := h.AddItem(c)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCartHandler_ClearRequiresConfirmation(t *testing.T) {
	svc := &stubCartService{}
	h := NewCartHandler(svc)

	c, _ := newTestContext(t, http.MethodDelete, "/client/cart", `{"confirm":false}`)
	err := h.Clear(c)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.cleared {
		t.Fatalf("cart must not be cleared without confirmation")
	}
}

func TestCartHandler_ClearWithConfirmation(t *testing.T) {
	svc := &stubCartService{}
	h := NewCartHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/client/cart", `{"confirm":true}`)
	if err := h.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !svc.cleared {
		t.Fatalf("expected cart cleared")
	}
}
