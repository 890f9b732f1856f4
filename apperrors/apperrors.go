package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a failure class surfaced by the core operations. Handlers
// map a Kind to an HTTP status; core code never constructs HTTP responses.
type Kind string

const (
	KindEmptyCart           Kind = "EMPTY_CART"
	KindMissingNotes        Kind = "MISSING_NOTES"
	KindInvalidShipment     Kind = "INVALID_SHIPMENT"
	KindOrderNotFound       Kind = "ORDER_NOT_FOUND"
	KindOrderNotPayable     Kind = "ORDER_NOT_PAYABLE"
	KindPaymentExists       Kind = "PAYMENT_EXISTS"
	KindPaymentNotFound     Kind = "PAYMENT_NOT_FOUND"
	KindTransactionNotFound Kind = "TRANSACTION_NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindGatewayUnavailable  Kind = "GATEWAY_UNAVAILABLE"
	KindGatewayTransport    Kind = "GATEWAY_TRANSPORT"
	KindGatewayAuthFailed   Kind = "GATEWAY_AUTH_FAILED"
	KindGatewayMalformed    Kind = "GATEWAY_MALFORMED"
	KindDBConflict          Kind = "DB_CONFLICT"
	KindInternal            Kind = "INTERNAL"

	// Handler-edge kinds. Core operations never return these; they exist so
	// HTTP handlers and middleware emit the same envelope as everything else.
	KindBadRequest   Kind = "BAD_REQUEST"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNotFound     Kind = "NOT_FOUND"
	KindRateLimited  Kind = "TOO_MANY_REQUESTS"
)

var statusByKind = map[Kind]int{
	KindEmptyCart:           http.StatusBadRequest,
	KindMissingNotes:        http.StatusBadRequest,
	KindInvalidShipment:     http.StatusBadRequest,
	KindOrderNotPayable:     http.StatusBadRequest,
	KindOrderNotFound:       http.StatusNotFound,
	KindPaymentNotFound:     http.StatusNotFound,
	KindTransactionNotFound: http.StatusNotFound,
	KindForbidden:           http.StatusForbidden,
	KindPaymentExists:       http.StatusConflict,
	KindDBConflict:          http.StatusConflict,
	KindGatewayUnavailable:  http.StatusBadGateway,
	KindGatewayTransport:    http.StatusBadGateway,
	KindGatewayAuthFailed:   http.StatusInternalServerError,
	KindGatewayMalformed:    http.StatusInternalServerError,
	KindInternal:            http.StatusInternalServerError,
	KindBadRequest:          http.StatusBadRequest,
	KindUnauthorized:        http.StatusUnauthorized,
	KindNotFound:            http.StatusNotFound,
	KindRateLimited:         http.StatusTooManyRequests,
}

// HTTPStatus returns the HTTP status code for a kind. Unknown kinds are
// treated as internal errors.
func (k Kind) HTTPStatus() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the failure half of every core operation. Err carries the
// underlying cause for logs; Message is safe to return to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected error.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf extracts the Kind from an error chain, defaulting to INTERNAL.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the client-safe message from an error chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
