package models

import "strings"

// VerificationState is the normalized bucket a provider order status falls
// into after verification.
type VerificationState string

const (
	VerificationSuccess VerificationState = "success"
	VerificationPending VerificationState = "pending"
	VerificationFailed  VerificationState = "failed"
)

// Provider status strings observed on GET /order/{id}. The provider's taxonomy
// is wider than ours; anything not listed below is treated as failed.
var (
	successStatuses = map[string]bool{
		"paid":      true,
		"completed": true,
		"prebooked": true,
		"validated": true,
		"free":      true,
	}
	pendingStatuses = map[string]bool{
		"pending":    true,
		"processing": true,
	}
)

// NormalizeOrderStatus maps a provider status string into one of the three
// verification buckets.
func NormalizeOrderStatus(status string) VerificationState {
	status = strings.ToLower(status)
	switch {
	case successStatuses[status]:
		return VerificationSuccess
	case pendingStatuses[status]:
		return VerificationPending
	default:
		return VerificationFailed
	}
}

// IsTerminal reports whether the state needs no further refresh. Pending
// orders require a manual user-triggered re-check.
func (s VerificationState) IsTerminal() bool {
	return s == VerificationSuccess || s == VerificationFailed
}

// OrderCustomer is the customer block echoed back on verification. The
// provider does not reliably return the email, so it may be filled from the
// correlation record instead.
type OrderCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// OrderVerification is the normalized view of a provider order returned by
// the verify endpoint.
type OrderVerification struct {
	OrderID           string            `json:"orderId"`
	Status            string            `json:"status"`
	State             VerificationState `json:"state"`
	Amount            float64           `json:"amount"`
	AmountOriginal    float64           `json:"amount_original"`
	Currency          string            `json:"currency"`
	Date              string            `json:"date,omitempty"`
	Customer          OrderCustomer     `json:"customer"`
	TicketsCount      int               `json:"tickets_count"`
	TicketsCountValid int               `json:"tickets_count_valid"`
	TicketsLink       string            `json:"tickets_link,omitempty"`
	TicketsLinkMobile string            `json:"tickets_link_mobile,omitempty"`
	Invoice           string            `json:"invoice,omitempty"`
}
