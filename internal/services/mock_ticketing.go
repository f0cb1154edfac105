package services

import (
	"context"
	"fmt"
)

// SentTicketDelivery records one SendTickets call on the mock
type SentTicketDelivery struct {
	OrderID string
	Email   string
	Mode    string
}

// MockTicketingService provides a canned ticketing provider for testing/demo.
// Responses come from the exported fields; calls that mutate provider state
// are recorded so tests can assert on the orchestration.
type MockTicketingService struct {
	Events       []ProviderEvent
	EventZones   map[int][]ProviderZone
	Order        *ProviderOrder
	PaymentModes []PaymentMode
	NextOrderID  int
	PaymentURL   string

	CreateOrderErr   error
	AddTicketsErr    error
	PaymentModesErr  error
	AddOperationsErr error
	PaymentURLErr    error
	GetOrderErr      error
	SendTicketsErr   error

	CreatedOrders   []*ProviderOrderCreate
	AttachedTickets map[int][]TicketLine
	Operations      map[int][]PaymentOperation
	SentTickets     []SentTicketDelivery
}

// NewMockTicketingService creates a mock with sensible defaults
func NewMockTicketingService() *MockTicketingService {
	return &MockTicketingService{
		EventZones:      make(map[int][]ProviderZone),
		NextOrderID:     1001,
		PaymentURL:      "https://pay.example.com/checkout/1001",
		AttachedTickets: make(map[int][]TicketLine),
		Operations:      make(map[int][]PaymentOperation),
	}
}

func (m *MockTicketingService) GetEvents(ctx context.Context, params EventListParams) ([]ProviderEvent, error) {
	return m.Events, nil
}

func (m *MockTicketingService) GetEvent(ctx context.Context, eventID int) (*ProviderEvent, error) {
	for i := range m.Events {
		if m.Events[i].EventID == eventID {
			return &m.Events[i], nil
		}
	}
	return nil, fmt.Errorf("event %d not found", eventID)
}

func (m *MockTicketingService) GetEventZones(ctx context.Context, eventID int) ([]ProviderZone, error) {
	return m.EventZones[eventID], nil
}

func (m *MockTicketingService) CreateOrder(ctx context.Context, req *ProviderOrderCreate) (int, error) {
	if m.CreateOrderErr != nil {
		return 0, m.CreateOrderErr
	}
	m.CreatedOrders = append(m.CreatedOrders, req)
	return m.NextOrderID, nil
}

func (m *MockTicketingService) AddTickets(ctx context.Context, orderID int, lines []TicketLine) error {
	if m.AddTicketsErr != nil {
		return m.AddTicketsErr
	}
	m.AttachedTickets[orderID] = append(m.AttachedTickets[orderID], lines...)
	return nil
}

func (m *MockTicketingService) GetPaymentModes(ctx context.Context, orderID int) ([]PaymentMode, error) {
	if m.PaymentModesErr != nil {
		return nil, m.PaymentModesErr
	}
	return m.PaymentModes, nil
}

func (m *MockTicketingService) AddOperations(ctx context.Context, orderID int, ops []PaymentOperation) error {
	if m.AddOperationsErr != nil {
		return m.AddOperationsErr
	}
	m.Operations[orderID] = append(m.Operations[orderID], ops...)
	return nil
}

func (m *MockTicketingService) ResolvePaymentURL(ctx context.Context, orderID int, paymentMethod, returnURL, cancelURL string) (string, error) {
	if m.PaymentURLErr != nil {
		return "", m.PaymentURLErr
	}
	return m.PaymentURL, nil
}

func (m *MockTicketingService) GetOrder(ctx context.Context, orderID string) (*ProviderOrder, error) {
	if m.GetOrderErr != nil {
		return nil, m.GetOrderErr
	}
	if m.Order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return m.Order, nil
}

func (m *MockTicketingService) SendTickets(ctx context.Context, orderID, email, mode string) error {
	if m.SendTicketsErr != nil {
		return m.SendTicketsErr
	}
	m.SentTickets = append(m.SentTickets, SentTicketDelivery{OrderID: orderID, Email: email, Mode: mode})
	return nil
}
