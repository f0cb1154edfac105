package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esther-house/internal/models"
)

func TestVerifyOrderSuccess(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.Order = &ProviderOrder{
		OrderID:           1001,
		Status:            "paid",
		Amount:            90,
		Currency:          "CHF",
		TicketsCount:      2,
		TicketsCountValid: 2,
		TicketsLink:       "https://etickets.example.com/t/abc",
		Customer: ProviderOrderCustomer{
			Firstname: "Marie",
			Lastname:  "Dupont",
			Email:     "marie.dupont@example.ch",
		},
	}

	service := NewVerificationService(ticketing)

	verification, err := service.VerifyOrder(context.Background(), "1001", "")
	require.NoError(t, err)

	assert.Equal(t, "1001", verification.OrderID)
	assert.Equal(t, "paid", verification.Status)
	assert.Equal(t, models.VerificationSuccess, verification.State)
	assert.Equal(t, "marie.dupont@example.ch", verification.Customer.Email)
	assert.Equal(t, 2, verification.TicketsCountValid)
}

func TestVerifyOrderPendingAndFailed(t *testing.T) {
	ticketing := NewMockTicketingService()
	service := NewVerificationService(ticketing)

	ticketing.Order = &ProviderOrder{OrderID: 1001, Status: "processing"}
	verification, err := service.VerifyOrder(context.Background(), "1001", "")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, verification.State)

	ticketing.Order = &ProviderOrder{OrderID: 1001, Status: "cancelled"}
	verification, err = service.VerifyOrder(context.Background(), "1001", "")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationFailed, verification.State)
}

func TestVerifyOrderPrefersCallerEmailOverProviderEcho(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.Order = &ProviderOrder{
		OrderID: 1001,
		Status:  "paid",
		Customer: ProviderOrderCustomer{
			Email: "stale@example.ch",
		},
	}

	service := NewVerificationService(ticketing)

	verification, err := service.VerifyOrder(context.Background(), "1001", "marie.dupont@example.ch")
	require.NoError(t, err)
	assert.Equal(t, "marie.dupont@example.ch", verification.Customer.Email)

	// Without a caller email the provider echo is kept
	verification, err = service.VerifyOrder(context.Background(), "1001", "")
	require.NoError(t, err)
	assert.Equal(t, "stale@example.ch", verification.Customer.Email)
}

func TestVerifyOrderFillsEmailFromCorrelation(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.Order = &ProviderOrder{OrderID: 1001, Status: "paid"}

	service := NewVerificationService(ticketing)

	verification, err := service.VerifyOrder(context.Background(), "1001", "marie.dupont@example.ch")
	require.NoError(t, err)
	assert.Equal(t, "marie.dupont@example.ch", verification.Customer.Email)
}

func TestVerifyOrderNotFound(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.GetOrderErr = &models.ProviderError{Endpoint: "/order/9999", Status: 404, Body: "not found"}

	service := NewVerificationService(ticketing)

	_, err := service.VerifyOrder(context.Background(), "9999", "")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestVerifyOrderProviderFailure(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.GetOrderErr = &models.ProviderError{Endpoint: "/order/1001", Status: 502, Body: "bad gateway"}

	service := NewVerificationService(ticketing)

	_, err := service.VerifyOrder(context.Background(), "1001", "")
	var verificationErr *models.VerificationError
	require.ErrorAs(t, err, &verificationErr)
	assert.Equal(t, "1001", verificationErr.OrderID)
}

func TestSendTicketsValidation(t *testing.T) {
	ticketing := NewMockTicketingService()
	service := NewVerificationService(ticketing)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, service.SendTickets(context.Background(), "", "a@b.ch", ""), &validationErr)
	assert.ErrorAs(t, service.SendTickets(context.Background(), "1001", "", ""), &validationErr)

	require.NoError(t, service.SendTickets(context.Background(), "1001", "a@b.ch", "passbook"))
	require.Len(t, ticketing.SentTickets, 1)
	assert.Equal(t, SentTicketDelivery{OrderID: "1001", Email: "a@b.ch", Mode: "passbook"}, ticketing.SentTickets[0])
}

func TestSendTicketsDeliveryError(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.SendTicketsErr = &models.ProviderError{Endpoint: "/order/1001/send-tickets", Status: 500, Body: "smtp down"}

	service := NewVerificationService(ticketing)

	err := service.SendTickets(context.Background(), "1001", "a@b.ch", "")
	var deliveryErr *models.DeliveryError
	assert.ErrorAs(t, err, &deliveryErr)
}
