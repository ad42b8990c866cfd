package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// fakeOrderingAPI answers GraphQL operations by name and records the last
// request it saw.
type fakeOrderingAPI struct {
	t         *testing.T
	responses map[string]string // operation name -> raw JSON body
	lastAuth  string
	lastVars  map[string]any
}

func (f *fakeOrderingAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")

		var req struct {
			OperationName string         `json:"operationName"`
			Variables     map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Errorf("decode request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		f.lastVars = req.Variables

		body, ok := f.responses[req.OperationName]
		if !ok {
			f.t.Errorf("unexpected operation %q", req.OperationName)
			http.Error(w, "unknown operation", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, responses map[string]string) (*Client, *fakeOrderingAPI) {
	t.Helper()
	fake := &fakeOrderingAPI{t: t, responses: responses}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, zerolog.Nop()), fake
}

func TestClient_LoginReturnsToken(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"Login": `{"data":{"login":{"accessToken":"tok-abc"}}}`,
	})

	token, err := client.Login(context.Background(), "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("expected tok-abc, got %q", token)
	}
	if fake.lastAuth != "" {
		t.Fatalf("login must be unauthenticated, got header %q", fake.lastAuth)
	}
}

func TestClient_LoginErrorIsClassified(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"Login": `{"errors":[{"message":"Invalid credentials"}]}`,
	})

	_, err := client.Login(context.Background(), "ana@example.com", "nope")
	if domain.KindOf(err) != domain.KindCredentialInvalid {
		t.Fatalf("expected credential-invalid kind, got %v", err)
	}
}

func TestClient_MyProfileSendsBearer(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"MyProfile": `{"data":{"myProfile":{"id":"u1","name":"Ana","email":"ana@example.com","role":"ADMIN","createdAt":1700000000}}}`,
	})

	profile, err := client.MyProfile(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	if fake.lastAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", fake.lastAuth)
	}
	if profile.Role != domain.RoleAdmin || profile.Name != "Ana" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.CreatedAt.Unix() != 1700000000 {
		t.Fatalf("createdAt must decode unix seconds, got %v", profile.CreatedAt)
	}
}

func TestClient_CreateOrderReturnsServerTotal(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"CreateOrder": `{"data":{"createOrder":{"id":"fallback","order":{"id":"o1","total":2500,"status":"PENDING"}}}}`,
	})

	created, err := client.CreateOrder(context.Background(), "tok", domain.OrderDraft{
		Items: []domain.OrderDraftItem{{MenuItemID: "m1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order error: %v", err)
	}
	if created.ID != "o1" || created.Total != 2500 || created.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected created order: %+v", created)
	}

	items, ok := fake.lastVars["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one draft item variable, got %v", fake.lastVars["items"])
	}
}

func TestClient_CreatePaymentRejectsIncompleteHandoff(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"CreatePayment": `{"data":{"createPayment":{"success":false,"url":"","token":""}}}`,
	})

	_, err := client.CreatePayment(context.Background(), "tok", ports.PaymentInput{
		Amount: 2500, BuyOrder: "o1", SessionID: "ref",
	})
	if domain.KindOf(err) != domain.KindPaymentRejected {
		t.Fatalf("expected payment-rejected kind, got %v", err)
	}
}

func TestClient_UnreachableEndpointIsNetworkKind(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, zerolog.Nop())

	_, err := client.Menu(context.Background())
	if domain.KindOf(err) != domain.KindNetworkUnreachable {
		t.Fatalf("expected network kind, got %v", err)
	}
}
