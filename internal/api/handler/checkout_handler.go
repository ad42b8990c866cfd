package handler

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// handoffPage is the auto-submitting form that hands the browser to the
// payment provider. The provider expects a POST with a single hidden
// token_ws field.
var handoffPage = template.Must(template.New("handoff").Parse(`<!DOCTYPE html>
<html>
<head><title>Redirecting to payment</title></head>
<body onload="document.forms[0].submit()">
<form method="POST" action="{{.RedirectURL}}">
<input type="hidden" name="token_ws" value="{{.Token}}">
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`))

// CheckoutHandler turns the session's cart into an order and hands the
// browser off to the payment provider.
type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout handles POST /client/checkout.
//
// @Summary      Submit the cart and start payment
// @Tags         checkout
// @Produce      html
// @Success      200  {string}  string  "auto-submitting payment form"
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /client/checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	handoff, err := h.checkout.Checkout(c.Request().Context(), middleware.SessionID(c), bearer)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return handoffPage.Execute(c.Response(), handoff)
}
