package services

import (
	"context"
	"errors"
	"strconv"

	"esther-house/internal/models"
)

// VerificationService checks order state against the ticketing provider and
// triggers ticket delivery.
type VerificationService struct {
	ticketing TicketingServiceInterface
}

// NewVerificationService creates a new verification service
func NewVerificationService(ticketing TicketingServiceInterface) *VerificationService {
	return &VerificationService{ticketing: ticketing}
}

// VerifyOrder fetches an order from the provider and normalizes its status
// into the success/pending/failed buckets. A non-empty email overrides the
// provider's echoed customer email; the provider stays the authority on
// order state.
func (s *VerificationService) VerifyOrder(ctx context.Context, orderID, email string) (*models.OrderVerification, error) {
	if orderID == "" {
		return nil, &models.ValidationError{Field: "orderId", Message: "order id is required"}
	}

	order, err := s.ticketing.GetOrder(ctx, orderID)
	if err != nil {
		var providerErr *models.ProviderError
		if errors.As(err, &providerErr) && providerErr.Status == 404 {
			return nil, models.ErrOrderNotFound
		}
		return nil, &models.VerificationError{OrderID: orderID, Cause: err}
	}

	verification := &models.OrderVerification{
		OrderID:           orderID,
		Status:            order.Status,
		State:             models.NormalizeOrderStatus(order.Status),
		Amount:            order.Amount,
		AmountOriginal:    order.AmountOriginal,
		Currency:          order.Currency,
		Date:              order.Date,
		TicketsCount:      order.TicketsCount,
		TicketsCountValid: order.TicketsCountValid,
		TicketsLink:       order.TicketsLink,
		TicketsLinkMobile: order.TicketsLinkMobile,
		Invoice:           order.Invoice,
		Customer: models.OrderCustomer{
			Email:     order.Customer.Email,
			FirstName: order.Customer.Firstname,
			LastName:  order.Customer.Lastname,
		},
	}

	// The caller-supplied email wins over the provider echo, which is not
	// always present and may be stale.
	if email != "" {
		verification.Customer.Email = email
	}

	if id := order.OrderID; id > 0 {
		verification.OrderID = strconv.Itoa(id)
	} else if order.ID > 0 {
		verification.OrderID = strconv.Itoa(order.ID)
	}

	return verification, nil
}

// SendTickets asks the provider to deliver the order's tickets by email
func (s *VerificationService) SendTickets(ctx context.Context, orderID, email, mode string) error {
	if orderID == "" {
		return &models.ValidationError{Field: "orderId", Message: "order id is required"}
	}
	if email == "" {
		return &models.ValidationError{Field: "email", Message: "email is required"}
	}

	if err := s.ticketing.SendTickets(ctx, orderID, email, mode); err != nil {
		return &models.DeliveryError{OrderID: orderID, Cause: err}
	}
	return nil
}
