package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrEventNotFound = errors.New("event not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidInput  = errors.New("invalid input")
)

// ValidationError reports a missing or malformed customer/cart field. It is
// raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ProviderError carries the ticketing provider's HTTP status and raw response
// body so callers can log the full failure for operator diagnosis. The raw
// body must never be shown to end users.
type ProviderError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d on %s: %s", e.Status, e.Endpoint, e.Body)
}

// OrderCreationError means the provider's order-create call failed or returned
// no order identifier. The whole checkout aborts and the cart is retained.
type OrderCreationError struct {
	Cause error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Cause)
}

func (e *OrderCreationError) Unwrap() error { return e.Cause }

// TicketAttachmentError means the order exists on the provider side but the
// ticket-attach step failed, leaving an empty shell order. There is no
// automatic compensation; the failure must be surfaced loudly so an operator
// can follow up.
type TicketAttachmentError struct {
	OrderID int
	Cause   error
}

func (e *TicketAttachmentError) Error() string {
	return fmt.Sprintf("failed to attach tickets to order %d: %v", e.OrderID, e.Cause)
}

func (e *TicketAttachmentError) Unwrap() error { return e.Cause }

// PaymentInitiationError means no payment endpoint variant produced a payment
// URL. It is non-fatal: the order exists, so checkout degrades to a
// confirmation without a payment link.
type PaymentInitiationError struct {
	OrderID int
	Cause   error
}

func (e *PaymentInitiationError) Error() string {
	return fmt.Sprintf("payment initiation failed for order %d: %v", e.OrderID, e.Cause)
}

func (e *PaymentInitiationError) Unwrap() error { return e.Cause }

// VerificationError means the provider status fetch failed. Verification
// surfaces it as a failed state; it is not retried automatically.
type VerificationError struct {
	OrderID string
	Cause   error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed for order %s: %v", e.OrderID, e.Cause)
}

func (e *VerificationError) Unwrap() error { return e.Cause }

// DeliveryError means a ticket-send request failed. It never affects the
// order's verified status.
type DeliveryError struct {
	OrderID string
	Cause   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("ticket delivery failed for order %s: %v", e.OrderID, e.Cause)
}

func (e *DeliveryError) Unwrap() error { return e.Cause }
