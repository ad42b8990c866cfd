package domain

// PaymentHandoff is the gateway-redirect record issued by the payment
// provider via the ordering API. It is consumed exactly once — rendered into
// the auto-submitting POST form — and never stored.
type PaymentHandoff struct {
	RedirectURL string
	// Token is the provider's one-time opaque value, posted back to the
	// provider as the form's single hidden field.
	Token string
}

// PaymentResult carries the query parameters the payment provider appends
// when redirecting the browser back after the hosted flow.
type PaymentResult struct {
	Status       string  `json:"status"`
	Amount       float64 `json:"amount,omitempty"`
	BuyOrder     string  `json:"buy_order,omitempty"`
	Token        string  `json:"token,omitempty"`
	ReceiptID    string  `json:"receipt_id,omitempty"`
	ResponseCode string  `json:"response_code,omitempty"`
	Message      string  `json:"message,omitempty"`
	// Verified is set by the gateway, not the provider: true only when the
	// buy order matches one of the caller's own orders and the amounts agree.
	Verified bool `json:"verified"`
}
