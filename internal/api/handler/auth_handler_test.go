package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// stubAccountAPI answers the handful of operations each test exercises; the
// embedded interface covers the rest.
type stubAccountAPI struct {
	ports.AccountAPI
	loginFn    func(ctx context.Context, email, password string) (string, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, error)
}

func (s *stubAccountAPI) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountAPI) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, input)
}

type memoryTokenStore struct {
	tokens map[string]string
	emails map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]string), emails: make(map[string]string)}
}

func (s *memoryTokenStore) Get(_ context.Context, id string) (string, error) {
	return s.tokens[id], nil
}
func (s *memoryTokenStore) Set(_ context.Context, id, token string) error {
	s.tokens[id] = token
	return nil
}
func (s *memoryTokenStore) Clear(_ context.Context, id string) error {
	delete(s.tokens, id)
	return nil
}
func (s *memoryTokenStore) RememberEmail(_ context.Context, id, email string) error {
	s.emails[id] = email
	return nil
}
func (s *memoryTokenStore) RememberedEmail(_ context.Context, id string) (string, error) {
	return s.emails[id], nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")
	return c, rec
}

func unsignedToken(role string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"` + role + `"}`))
	return header + "." + payload + ".sig"
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthHandler_LoginStoresTokenAndPicksHome(t *testing.T) {
	tokens := newMemoryTokenStore()
	account := &stubAccountAPI{
		loginFn: func(_ context.Context, email, password string) (string, error) {
			if email != "ana@example.com" || password != "secret123" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return unsignedToken("ADMIN"), nil
		},
	}
	h := NewAuthHandler(account, tokens, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tokens.tokens["s1"] == "" {
		t.Fatalf("expected token stored for the session")
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "ADMIN" || resp["home"] != "/admin" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestAuthHandler_LoginDefaultsToClientHome(t *testing.T) {
	tokens := newMemoryTokenStore()
	account := &stubAccountAPI{
		loginFn: func(context.Context, string, string) (string, error) {
			// An opaque token without decodable claims.
			return "opaque-token", nil
		},
	}
	h := NewAuthHandler(account, tokens, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"b@example.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "CLIENT" || resp["home"] != "/client" {
		t.Fatalf("expected CLIENT default, got %v", resp)
	}
}

func TestAuthHandler_LoginRemembersEmailOnRequest(t *testing.T) {
	tokens := newMemoryTokenStore()
	account := &stubAccountAPI{
		loginFn: func(context.Context, string, string) (string, error) {
			return unsignedToken("CLIENT"), nil
		},
	}
	h := NewAuthHandler(account, tokens, zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"secret123","remember":true}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tokens.emails["s1"] != "ana@example.com" {
		t.Fatalf("expected remembered email, got %q", tokens.emails["s1"])
	}
}

func TestAuthHandler_LoginFailureKeepsStoreEmpty(t *testing.T) {
	tokens := newMemoryTokenStore()
	account := &stubAccountAPI{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.NewError(domain.KindCredentialInvalid, "invalid credentials")
		},
	}
	h := NewAuthHandler(account, tokens, zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"wrongpass"}`)
	err := h.Login(c)
	if domain.KindOf(err) != domain.KindCredentialInvalid {
		t.Fatalf("expected credential-invalid error, got %v", err)
	}
	if len(tokens.tokens) != 0 {
		t.Fatalf("no token may be stored after a failed login")
	}
}

func TestAuthHandler_RegisterValidatesPasswordLength(t *testing.T) {
	h := NewAuthHandler(&stubAccountAPI{
		registerFn: func(context.Context, ports.RegisterInput) (string, error) {
			t.Fatalf("upstream must not be called for an invalid payload")
			return "", nil
		},
	}, newMemoryTokenStore(), zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"short"}`)
	err := h.Register(c)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_LogoutClearsToken(t *testing.T) {
	tokens := newMemoryTokenStore()
	tokens.tokens["s1"] = "tok"
	h := NewAuthHandler(&stubAccountAPI{}, tokens, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(tokens.tokens) != 0 {
		t.Fatalf("expected token removed")
	}
}

func TestAuthHandler_LoginInfoServesRememberedEmail(t *testing.T) {
	tokens := newMemoryTokenStore()
	tokens.emails["s1"] = "ana@example.com"
	h := NewAuthHandler(&stubAccountAPI{}, tokens, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet, "/auth/login-info", "")
	if err := h.LoginInfo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["remembered_email"] != "ana@example.com" {
		t.Fatalf("unexpected response: %v", resp)
	}
}
