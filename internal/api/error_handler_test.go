package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if jsonErr := json.Unmarshal(rec.Body.Bytes(), &body); jsonErr != nil {
		t.Fatalf("invalid error envelope: %v", jsonErr)
	}
	return rec.Code, body
}

func TestErrorHandler_KindStatusMapping(t *testing.T) {
	cases := []struct {
		kind   domain.Kind
		status int
	}{
		{domain.KindCredentialInvalid, http.StatusUnauthorized},
		{domain.KindEmailUnconfirmed, http.StatusForbidden},
		{domain.KindAccountLocked, http.StatusForbidden},
		{domain.KindNetworkUnreachable, http.StatusBadGateway},
		{domain.KindDuplicateRegistration, http.StatusConflict},
		{domain.KindValidation, http.StatusBadRequest},
		{domain.KindTokenInvalid, http.StatusUnauthorized},
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindForbidden, http.StatusForbidden},
		{domain.KindOrderRejected, http.StatusBadGateway},
		{domain.KindPaymentRejected, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			code, body := invokeErrorHandler(t, domain.NewError(tc.kind, "boom"))
			if code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, code)
			}
			if body.Kind != string(tc.kind) {
				t.Errorf("expected kind %q, got %q", tc.kind, body.Kind)
			}
			if body.Error != "boom" {
				t.Errorf("expected the classified message, got %q", body.Error)
			}
		})
	}
}

func TestErrorHandler_InternalKindMasksMessage(t *testing.T) {
	code, body := invokeErrorHandler(t,
		domain.WrapError(domain.KindInternal, "sensitive upstream detail", errors.New("connection string leaked")))

	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal detail must not reach the client, got %q", body.Error)
	}
	if body.Kind != string(domain.KindInternal) {
		t.Fatalf("expected internal kind, got %q", body.Kind)
	}
}

func TestErrorHandler_EchoErrorsKeepTheirStatus(t *testing.T) {
	code, body := invokeErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body.Error != "Not Found" || body.Kind != "" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestErrorHandler_UnclassifiedErrorIsInternal(t *testing.T) {
	code, body := invokeErrorHandler(t, errors.New("boom"))

	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Error != "internal server error" || body.Kind != "" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}
