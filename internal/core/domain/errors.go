package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed taxonomy of failures the gateway distinguishes. Remote
// failures are classified into a Kind exactly once, at the upstream boundary;
// everything above works with kinds, never with message matching.
type Kind string

const (
	KindCredentialInvalid     Kind = "CREDENTIAL_INVALID"
	KindEmailUnconfirmed      Kind = "EMAIL_UNCONFIRMED"
	KindAccountLocked         Kind = "ACCOUNT_LOCKED"
	KindNetworkUnreachable    Kind = "NETWORK_UNREACHABLE"
	KindDuplicateRegistration Kind = "DUPLICATE_REGISTRATION"
	KindValidation            Kind = "VALIDATION_FAILURE"
	KindTokenInvalid          Kind = "TOKEN_INVALID"
	KindNotFound              Kind = "NOT_FOUND"
	KindForbidden             Kind = "FORBIDDEN"
	// KindOrderRejected and KindPaymentRejected distinguish the two checkout
	// stages that can fail, replacing the message-text distinction of the
	// original flow.
	KindOrderRejected   Kind = "ORDER_REJECTED"
	KindPaymentRejected Kind = "PAYMENT_REJECTED"
	KindInternal        Kind = "SERVER_ERROR"
)

var httpStatusByKind = map[Kind]int{
	KindCredentialInvalid:     http.StatusUnauthorized,
	KindEmailUnconfirmed:      http.StatusForbidden,
	KindAccountLocked:         http.StatusForbidden,
	KindNetworkUnreachable:    http.StatusBadGateway,
	KindDuplicateRegistration: http.StatusConflict,
	KindValidation:            http.StatusBadRequest,
	KindTokenInvalid:          http.StatusUnauthorized,
	KindNotFound:              http.StatusNotFound,
	KindForbidden:             http.StatusForbidden,
	KindOrderRejected:         http.StatusBadGateway,
	KindPaymentRejected:       http.StatusBadGateway,
	KindInternal:              http.StatusInternalServerError,
}

// HTTPStatus maps a kind to its canonical HTTP status code.
func (k Kind) HTTPStatus() int {
	if status, ok := httpStatusByKind[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a classified gateway failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error with a user-visible message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError classifies an underlying error, keeping it on the chain.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain; unclassified errors are
// internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Sentinels for conditions raised by the gateway itself rather than the
// upstream API.
var (
	ErrCartEmpty       = NewError(KindValidation, "cart is empty")
	ErrMenuItemUnknown = NewError(KindNotFound, "menu item not found")
)
