package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

type stubOrderHistory struct {
	ports.OrderAPI
	orders []domain.Order
	err    error
}

func (s *stubOrderHistory) MyOrders(context.Context, string) ([]domain.Order, error) {
	return s.orders, s.err
}

func paidOrder(id string, total float64) domain.Order {
	return domain.Order{ID: id, Total: total, Status: domain.OrderStatusPending, CreatedAt: time.Now()}
}

func decodeResult(t *testing.T, body []byte) domain.PaymentResult {
	t.Helper()
	var result domain.PaymentResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return result
}

func TestPaymentResult_EchoesProviderParams(t *testing.T) {
	tokens := newMemoryTokenStore()
	h := NewPaymentResultHandler(tokens, &stubOrderHistory{}, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet,
		"/payment/result?status=success&amount=2500&buy_order=o1&token=tk&receipt_id=r9&response_code=0&message=Approved", "")
	if err := h.Result(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	result := decodeResult(t, rec.Body.Bytes())
	if result.Status != "success" || result.Amount != 2500 || result.BuyOrder != "o1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.ReceiptID != "r9" || result.ResponseCode != "0" || result.Message != "Approved" {
		t.Fatalf("unexpected result: %+v", result)
	}
	// No stored token: the claim cannot be cross-checked.
	if result.Verified {
		t.Fatalf("result must stay unverified without a session")
	}
}

func TestPaymentResult_VerifiesAgainstOrderHistory(t *testing.T) {
	tokens := newMemoryTokenStore()
	tokens.tokens["s1"] = "bearer"
	history := &stubOrderHistory{orders: []domain.Order{paidOrder("o1", 2500)}}
	h := NewPaymentResultHandler(tokens, history, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet,
		"/payment/result?status=success&amount=2500&buy_order=o1", "")
	if err := h.Result(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if result := decodeResult(t, rec.Body.Bytes()); !result.Verified {
		t.Fatalf("expected verified result, got %+v", result)
	}
}

func TestPaymentResult_AmountMismatchStaysUnverified(t *testing.T) {
	tokens := newMemoryTokenStore()
	tokens.tokens["s1"] = "bearer"
	history := &stubOrderHistory{orders: []domain.Order{paidOrder("o1", 2500)}}
	h := NewPaymentResultHandler(tokens, history, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet,
		"/payment/result?status=success&amount=9999&buy_order=o1", "")
	if err := h.Result(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if result := decodeResult(t, rec.Body.Bytes()); result.Verified {
		t.Fatalf("mismatched amount must not verify: %+v", result)
	}
}

func TestPaymentResult_MissingAmountStaysUnverified(t *testing.T) {
	tokens := newMemoryTokenStore()
	tokens.tokens["s1"] = "bearer"
	history := &stubOrderHistory{orders: []domain.Order{paidOrder("o1", 2500)}}
	h := NewPaymentResultHandler(tokens, history, zerolog.Nop())

	// A matching order id alone must not verify the claim.
	c, rec := newTestContext(t, http.MethodGet,
		"/payment/result?status=success&buy_order=o1", "")
	if err := h.Result(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if result := decodeResult(t, rec.Body.Bytes()); result.Verified {
		t.Fatalf("claim without an amount must not verify: %+v", result)
	}
}

func TestPaymentResult_HistoryFailureIsNotFatal(t *testing.T) {
	tokens := newMemoryTokenStore()
	tokens.tokens["s1"] = "bearer"
	history := &stubOrderHistory{err: domain.NewError(domain.KindNetworkUnreachable, "upstream down")}
	h := NewPaymentResultHandler(tokens, history, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet,
		"/payment/result?status=failure&buy_order=o1&message=Rejected", "")
	if err := h.Result(c); err != nil {
		t.Fatalf("result page must render despite history failure: %v", err)
	}

	result := decodeResult(t, rec.Body.Bytes())
	if result.Verified {
		t.Fatalf("unreachable history must leave the result unverified")
	}
	if result.Message != "Rejected" {
		t.Fatalf("provider message must still be echoed: %+v", result)
	}
}
