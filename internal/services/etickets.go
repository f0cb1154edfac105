package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"esther-house/internal/models"
)

// ETicketsConfig represents the ticketing provider API configuration.
type ETicketsConfig struct {
	APIKey   string
	SalesKey string
	BaseURL  string
	Language string
	Currency string
}

// ETicketsClient is a thin HTTP client for the Infomaniak eTickets shop API.
// It carries no business logic: every method builds the uniform headers (API
// key, sales credential on write calls, language, currency) and propagates the
// provider's HTTP status and body on failure.
type ETicketsClient struct {
	config ETicketsConfig
	client *http.Client
}

// NewETicketsClient creates a new eTickets API client.
func NewETicketsClient(config ETicketsConfig) *ETicketsClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://etickets.infomaniak.com/api/shop"
	}
	if config.Language == "" {
		config.Language = "fr_FR"
	}
	if config.Currency == "" {
		config.Currency = "1" // CHF
	}

	return &ETicketsClient{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// ProviderAddress is the address block attached to a provider event.
type ProviderAddress struct {
	Title   string `json:"title"`
	Street  string `json:"street"`
	Number  string `json:"number"`
	Zipcode string `json:"zipcode"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// ProviderEventProperty is a key/value property on an event; only visible ones
// are exposed to the site.
type ProviderEventProperty struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// ProviderEvent is an event as returned by GET /events and GET /event/{id}.
type ProviderEvent struct {
	EventID           int                     `json:"event_id"`
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	Start             string                  `json:"start"`
	Date              string                  `json:"date"`
	Category          string                  `json:"category"`
	Status            string                  `json:"status"`
	Capacity          int                     `json:"capacity"`
	Portal            string                  `json:"portal"`
	PortalHorizontal  string                  `json:"portal_horizontal"`
	Thumbnail         string                  `json:"thumbnail"`
	PortalLinkPreview string                  `json:"portal_link_preview"`
	Address           ProviderAddress         `json:"address"`
	Properties        []ProviderEventProperty `json:"properties,omitempty"`
}

// ProviderCategory is a price tier within a zone.
type ProviderCategory struct {
	CategoryID int     `json:"category_id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	FreeSeats  int     `json:"free_seats"`
	Limit      int     `json:"limit,omitempty"`
}

// ProviderZone is a seating/admission area grouping categories.
type ProviderZone struct {
	ZoneID     int                `json:"zone_id"`
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	FreeSeats  int                `json:"free_seats"`
	TotalSeats int                `json:"total_seats"`
	Categories []ProviderCategory `json:"categories"`
}

// TicketLine is a (category, count) pair submitted on order create and
// ticket attach.
type TicketLine struct {
	CategoryID int `json:"category_id"`
	Count      int `json:"count"`
}

// ProviderCustomer is the customer payload of an order-create request, using
// the provider's field names.
type ProviderCustomer struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// ProviderOrderCreate is the body of POST /order/create.
type ProviderOrderCreate struct {
	EventID  int              `json:"event_id"`
	Customer ProviderCustomer `json:"customer"`
	Tickets  []TicketLine     `json:"tickets"`
}

// PaymentMode is one entry of GET /order/{id}/payments.
type PaymentMode struct {
	PaymentID int    `json:"payment_id"`
	Name      string `json:"name"`
}

// PaymentOperation registers a payment against an order.
type PaymentOperation struct {
	PaymentID int     `json:"payment_id"`
	Amount    float64 `json:"amount"`
}

// ProviderOrderCustomer is the customer block echoed on GET /order/{id}.
type ProviderOrderCustomer struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// ProviderOrder is an order as returned by GET /order/{id}.
type ProviderOrder struct {
	OrderID           int                   `json:"order_id"`
	ID                int                   `json:"id"`
	Status            string                `json:"status"`
	Amount            float64               `json:"amount"`
	AmountOriginal    float64               `json:"amount_original"`
	Currency          string                `json:"currency"`
	Date              string                `json:"date"`
	Customer          ProviderOrderCustomer `json:"customer"`
	TicketsCount      int                   `json:"tickets_count"`
	TicketsCountValid int                   `json:"tickets_count_valid"`
	TicketsLink       string                `json:"tickets_link"`
	TicketsLinkMobile string                `json:"tickets_link_mobile"`
	Invoice           string                `json:"invoice"`
}

// EventListParams are the query parameters accepted by GET /events.
type EventListParams struct {
	IDs            string
	Search         string
	Limit          int
	Offset         int
	WithQuota      bool
	WithProperties bool
	Sort           string
}

const (
	maxGetAttempts = 3
	retryBaseDelay = 500 * time.Millisecond
)

// request performs one call against the provider and returns the raw response
// body. GET requests are retried with backoff on transport errors and 5xx
// responses; writes are never retried since order creation is not idempotent.
func (c *ETicketsClient) request(ctx context.Context, method, endpoint string, body interface{}, sales bool) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = maxGetAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			}
		}

		respBody, retryable, err := c.doOnce(ctx, method, endpoint, payload, sales)
		if err == nil {
			return respBody, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, lastErr
}

func (c *ETicketsClient) doOnce(ctx context.Context, method, endpoint string, payload []byte, sales bool) (respBody []byte, retryable bool, err error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+endpoint, reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("key", c.config.APIKey)
	req.Header.Set("Accept-Language", c.config.Language)
	req.Header.Set("currency", c.config.Currency)
	if sales {
		req.Header.Set("Credential", c.config.SalesKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("eTickets API error: %s %s -> %d %s", method, endpoint, resp.StatusCode, string(respBody))
		return nil, resp.StatusCode >= 500, &models.ProviderError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     string(respBody),
		}
	}

	return respBody, false, nil
}

// GetEvents fetches the event listing.
func (c *ETicketsClient) GetEvents(ctx context.Context, params EventListParams) ([]ProviderEvent, error) {
	query := url.Values{}
	if params.IDs != "" {
		query.Set("ids", params.IDs)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.WithQuota {
		query.Set("withQuota", "1")
	}
	if params.WithProperties {
		query.Set("withProperties", "1")
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}

	endpoint := "/events"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.request(ctx, http.MethodGet, endpoint, nil, false)
	if err != nil {
		return nil, err
	}

	var events []ProviderEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events response: %w", err)
	}
	return events, nil
}

// GetEvent fetches a single event by ID.
func (c *ETicketsClient) GetEvent(ctx context.Context, eventID int) (*ProviderEvent, error) {
	body, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/event/%d", eventID), nil, false)
	if err != nil {
		return nil, err
	}

	var event ProviderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event response: %w", err)
	}
	return &event, nil
}

// GetEventZones fetches the zones and price categories for an event.
func (c *ETicketsClient) GetEventZones(ctx context.Context, eventID int) ([]ProviderZone, error) {
	body, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/event/%d/zones", eventID), nil, false)
	if err != nil {
		return nil, err
	}

	var zones []ProviderZone
	if err := json.Unmarshal(body, &zones); err != nil {
		return nil, fmt.Errorf("failed to decode zones response: %w", err)
	}
	return zones, nil
}

// CreateOrder submits a new order with customer info and ticket lines. The
// provider returns the order ID either as a bare number or wrapped in an
// object; both forms are accepted.
func (c *ETicketsClient) CreateOrder(ctx context.Context, req *ProviderOrderCreate) (int, error) {
	body, err := c.request(ctx, http.MethodPost, "/order/create", req, true)
	if err != nil {
		return 0, err
	}

	orderID, err := parseOrderID(body)
	if err != nil {
		log.Printf("eTickets API: no order id in create response: %s", string(body))
		return 0, err
	}
	return orderID, nil
}

// parseOrderID extracts the order identifier from a create response. Observed
// shapes: a bare number, {"id": n} and {"data": {"id": n}}.
func parseOrderID(body []byte) (int, error) {
	var bare int
	if err := json.Unmarshal(body, &bare); err == nil && bare > 0 {
		return bare, nil
	}

	var wrapped struct {
		ID   int `json:"id"`
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Data.ID > 0 {
			return wrapped.Data.ID, nil
		}
		if wrapped.ID > 0 {
			return wrapped.ID, nil
		}
	}

	return 0, fmt.Errorf("no order id in provider response")
}

// AddTickets attaches ticket lines to an existing order. The create endpoint
// accepts a tickets payload but does not reliably apply it, so this call is
// required for the seats to actually be reserved.
func (c *ETicketsClient) AddTickets(ctx context.Context, orderID int, lines []TicketLine) error {
	_, err := c.request(ctx, http.MethodPost, fmt.Sprintf("/order/%d/tickets", orderID), lines, true)
	return err
}

// GetPaymentModes lists the payment modes available for an order.
func (c *ETicketsClient) GetPaymentModes(ctx context.Context, orderID int) ([]PaymentMode, error) {
	body, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/order/%d/payments", orderID), nil, false)
	if err != nil {
		return nil, err
	}

	var modes []PaymentMode
	if err := json.Unmarshal(body, &modes); err != nil {
		return nil, fmt.Errorf("failed to decode payment modes response: %w", err)
	}
	return modes, nil
}

// AddOperations registers payment operations against an order.
func (c *ETicketsClient) AddOperations(ctx context.Context, orderID int, ops []PaymentOperation) error {
	_, err := c.request(ctx, http.MethodPost, fmt.Sprintf("/order/%d/operations", orderID), ops, true)
	return err
}

// paymentURLRequest is the body sent to the payment-initiation endpoints.
type paymentURLRequest struct {
	PaymentMethod string `json:"payment_method"`
	ReturnURL     string `json:"return_url"`
	CancelURL     string `json:"cancel_url"`
}

// ResolvePaymentURL tries the known payment-initiation endpoint variants in
// order until one returns a payment URL. The provider's API is inconsistent
// here; which variant answers depends on the shop configuration.
func (c *ETicketsClient) ResolvePaymentURL(ctx context.Context, orderID int, paymentMethod, returnURL, cancelURL string) (string, error) {
	endpoints := []string{
		fmt.Sprintf("/order/%d/payment", orderID),
		fmt.Sprintf("/order/%d/pay", orderID),
		fmt.Sprintf("/payment/%d", orderID),
	}

	req := paymentURLRequest{
		PaymentMethod: paymentMethod,
		ReturnURL:     returnURL,
		CancelURL:     cancelURL,
	}

	var lastErr error
	for _, endpoint := range endpoints {
		body, err := c.request(ctx, http.MethodPost, endpoint, req, false)
		if err != nil {
			log.Printf("eTickets API: payment endpoint %s failed: %v", endpoint, err)
			lastErr = err
			continue
		}

		paymentURL := parsePaymentURL(body)
		if paymentURL != "" {
			return paymentURL, nil
		}

		log.Printf("eTickets API: no payment url in response from %s: %s", endpoint, string(body))
		lastErr = fmt.Errorf("no payment url in response from %s", endpoint)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no payment endpoint available")
	}
	return "", lastErr
}

// parsePaymentURL extracts the payment URL from a payment-initiation response.
// Observed fields: payment_url, data.payment_url and url.
func parsePaymentURL(body []byte) string {
	var resp struct {
		PaymentURL string `json:"payment_url"`
		URL        string `json:"url"`
		Data       struct {
			PaymentURL string `json:"payment_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}

	switch {
	case resp.PaymentURL != "":
		return resp.PaymentURL
	case resp.Data.PaymentURL != "":
		return resp.Data.PaymentURL
	default:
		return resp.URL
	}
}

// GetOrder fetches the current state of an order. The response may be wrapped
// in a data envelope.
func (c *ETicketsClient) GetOrder(ctx context.Context, orderID string) (*ProviderOrder, error) {
	body, err := c.request(ctx, http.MethodGet, "/order/"+url.PathEscape(orderID), nil, false)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Data *ProviderOrder `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var order ProviderOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	return &order, nil
}

// SendTickets asks the provider to email the order's tickets. Mode selects the
// delivery artifact; the default PDF mode uses the bare endpoint.
func (c *ETicketsClient) SendTickets(ctx context.Context, orderID, email, mode string) error {
	endpoint := "/order/" + url.PathEscape(orderID) + "/send-tickets"
	if mode != "" && mode != "pdf" {
		endpoint += "/" + url.PathEscape(mode)
	}

	payload := struct {
		Email string `json:"email"`
	}{Email: email}

	_, err := c.request(ctx, http.MethodPost, endpoint, payload, false)
	return err
}
