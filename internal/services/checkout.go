package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"esther-house/internal/models"
)

// CheckoutService orchestrates the order flow against the ticketing provider:
// create the order, attach the ticket lines, then settle it either as a free
// order or by resolving a hosted payment URL.
type CheckoutService struct {
	ticketing      TicketingServiceInterface
	baseURL        string
	defaultPayment string
}

// NewCheckoutService creates a new checkout service. baseURL is the public
// site URL used to build return and confirmation links.
func NewCheckoutService(ticketing TicketingServiceInterface, baseURL string) *CheckoutService {
	return &CheckoutService{
		ticketing:      ticketing,
		baseURL:        strings.TrimRight(baseURL, "/"),
		defaultPayment: "card",
	}
}

// CreateOrder runs the full checkout flow for the given customer and cart
// items. An order is only reported as created once its tickets are attached;
// a created order whose payment link could not be resolved is still returned,
// with a warning and the confirmation URL, since the provider holds the
// reservation either way.
func (s *CheckoutService) CreateOrder(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &models.ValidationError{Field: "items", Message: "quantity must be positive"}
		}
	}

	eventID, lines, err := ticketLinesForFirstEvent(req.Items)
	if err != nil {
		return nil, err
	}

	orderID, err := s.ticketing.CreateOrder(ctx, &ProviderOrderCreate{
		EventID:  eventID,
		Customer: providerCustomer(req.Customer),
		Tickets:  lines,
	})
	if err != nil {
		return nil, &models.OrderCreationError{Cause: err}
	}

	if err := s.ticketing.AddTickets(ctx, orderID, lines); err != nil {
		return nil, &models.TicketAttachmentError{OrderID: orderID, Cause: err}
	}

	result := &CheckoutResult{
		OrderID:         orderID,
		Email:           req.Customer.Email,
		ConfirmationURL: s.confirmationURL(orderID, req.Customer.Email),
	}

	if isFreeOrder(req.Items) {
		result.IsFree = true
		s.settleFreeOrder(ctx, orderID)
		return result, nil
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = s.defaultPayment
	}

	paymentURL, err := s.ticketing.ResolvePaymentURL(ctx, orderID, paymentMethod,
		result.ConfirmationURL, s.baseURL+"/panier")
	if err != nil {
		initErr := &models.PaymentInitiationError{OrderID: orderID, Cause: err}
		log.Printf("Checkout: order %d created but payment link unavailable: %v", orderID, initErr)
		result.Warning = "payment_link_unavailable"
		return result, nil
	}

	result.PaymentURL = paymentURL
	return result, nil
}

// settleFreeOrder registers a zero-amount operation using the provider's free
// payment mode so the order leaves the pending state. Failures are logged and
// swallowed: the order exists and the tickets are reserved, the shop back
// office can still validate it manually.
func (s *CheckoutService) settleFreeOrder(ctx context.Context, orderID int) {
	modes, err := s.ticketing.GetPaymentModes(ctx, orderID)
	if err != nil {
		log.Printf("Checkout: failed to list payment modes for free order %d: %v", orderID, err)
		return
	}

	var freeMode *PaymentMode
	for i := range modes {
		if strings.Contains(strings.ToLower(modes[i].Name), "gratuit") {
			freeMode = &modes[i]
			break
		}
	}
	if freeMode == nil {
		log.Printf("Checkout: no free payment mode found for order %d", orderID)
		return
	}

	err = s.ticketing.AddOperations(ctx, orderID, []PaymentOperation{
		{PaymentID: freeMode.PaymentID, Amount: 0},
	})
	if err != nil {
		log.Printf("Checkout: failed to settle free order %d: %v", orderID, err)
	}
}

func (s *CheckoutService) confirmationURL(orderID int, email string) string {
	return fmt.Sprintf("%s/confirmation?orderId=%d&email=%s",
		s.baseURL, orderID, url.QueryEscape(email))
}

// ticketLinesForFirstEvent groups cart items by event and returns the lines
// of the first event encountered. The provider scopes an order to a single
// event, so a mixed cart is checked out one event at a time.
func ticketLinesForFirstEvent(items []models.CartItem) (int, []TicketLine, error) {
	firstEvent := items[0].EventID
	eventID, err := strconv.Atoi(firstEvent)
	if err != nil {
		return 0, nil, &models.ValidationError{Field: "eventId", Message: "invalid event id"}
	}

	var lines []TicketLine
	for _, item := range items {
		if item.EventID != firstEvent {
			continue
		}
		lines = append(lines, TicketLine{CategoryID: item.CategoryID, Count: item.Quantity})
	}
	return eventID, lines, nil
}

// isFreeOrder reports whether every item in the order is free
func isFreeOrder(items []models.CartItem) bool {
	for _, item := range items {
		if item.Price.IsPositive() {
			return false
		}
	}
	return true
}

func providerCustomer(c models.CustomerInfo) ProviderCustomer {
	return ProviderCustomer{
		Firstname: c.FirstName,
		Lastname:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Zip:       c.PostalCode,
		Country:   c.Country,
	}
}
