package services

import (
	"context"

	"esther-house/internal/models"
)

// TicketingServiceInterface defines the interface for the ticketing provider client
type TicketingServiceInterface interface {
	GetEvents(ctx context.Context, params EventListParams) ([]ProviderEvent, error)
	GetEvent(ctx context.Context, eventID int) (*ProviderEvent, error)
	GetEventZones(ctx context.Context, eventID int) ([]ProviderZone, error)
	CreateOrder(ctx context.Context, req *ProviderOrderCreate) (int, error)
	AddTickets(ctx context.Context, orderID int, lines []TicketLine) error
	GetPaymentModes(ctx context.Context, orderID int) ([]PaymentMode, error)
	AddOperations(ctx context.Context, orderID int, ops []PaymentOperation) error
	ResolvePaymentURL(ctx context.Context, orderID int, paymentMethod, returnURL, cancelURL string) (string, error)
	GetOrder(ctx context.Context, orderID string) (*ProviderOrder, error)
	SendTickets(ctx context.Context, orderID, email, mode string) error
}

// CheckoutServiceInterface defines the interface for order checkout
type CheckoutServiceInterface interface {
	CreateOrder(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
}

// VerificationServiceInterface defines the interface for order verification
type VerificationServiceInterface interface {
	VerifyOrder(ctx context.Context, orderID, email string) (*models.OrderVerification, error)
	SendTickets(ctx context.Context, orderID, email, mode string) error
}

// EventCatalogServiceInterface defines the interface for the public event catalog
type EventCatalogServiceInterface interface {
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEvent(ctx context.Context, eventID int) (*models.Event, error)
	GetEventZones(ctx context.Context, eventID int) ([]ProviderZone, error)
}

// EmailServiceInterface defines the interface for transactional email
type EmailServiceInterface interface {
	SendContactMessage(req *ContactRequest) error
	SendContactConfirmation(req *ContactRequest) error
	SendBookingInquiry(req *BookingRequest) error
	SendBookingConfirmation(req *BookingRequest) error
	SendNewsletterNotification(email string) error
	SendNewsletterWelcome(email string) error
	TestConnection() error
}

// NewsletterServiceInterface defines the interface for newsletter subscription
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, email string) error
}

// CheckoutRequest contains everything needed to place an order
type CheckoutRequest struct {
	Customer      models.CustomerInfo `json:"customer"`
	Items         []models.CartItem   `json:"items"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
}

// CheckoutResult is the outcome of a successful checkout
type CheckoutResult struct {
	OrderID         int    `json:"orderId"`
	Email           string `json:"email"`
	PaymentURL      string `json:"paymentUrl,omitempty"`
	ConfirmationURL string `json:"confirmationUrl,omitempty"`
	IsFree          bool   `json:"isFree"`
	Warning         string `json:"warning,omitempty"`
}

// ContactRequest is a message submitted through the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// BookingRequest is a venue booking inquiry
type BookingRequest struct {
	Reference  string `json:"reference,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company,omitempty"`
	EventType  string `json:"eventType"`
	EventDate  string `json:"eventDate"`
	GuestCount int    `json:"guestCount"`
	Message    string `json:"message,omitempty"`
}
