package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"esther-house/internal/models"
	"esther-house/internal/services"
)

// OrderHandler drives checkout, confirmation and ticket delivery
type OrderHandler struct {
	checkout     services.CheckoutServiceInterface
	verification services.VerificationServiceInterface
	store        sessions.Store

	// autoSent guards the automatic ticket delivery on first successful
	// verification, one send per order per process. cartCleared does the
	// same for the cart wipe, which must only happen on confirmed success.
	autoSent    sync.Map
	cartCleared sync.Map
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkout services.CheckoutServiceInterface, verification services.VerificationServiceInterface, store sessions.Store) *OrderHandler {
	return &OrderHandler{
		checkout:     checkout,
		verification: verification,
		store:        store,
	}
}

func orderEmailCookieName(orderID string) string {
	return fmt.Sprintf("order_%s_email", orderID)
}

// CreateOrder handles POST /api/orders. Items come from the request body
// when present, the session cart otherwise. On success a correlation cookie
// linking the order to the buyer's email is set so the confirmation page can
// verify without retyping it. The cart is left untouched here; it is only
// cleared once the order verifies as successful, so an abandoned or failed
// payment keeps the buyer's selection.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	session, _ := h.store.Get(r, sessionName)

	if len(req.Items) == 0 && session != nil {
		persistence := &sessionCartPersistence{session: session, r: r, w: w}
		if cart, err := persistence.Load(); err == nil {
			req.Items = cart.Items
		}
	}

	result, err := h.checkout.CreateOrder(r.Context(), &req)
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     orderEmailCookieName(fmt.Sprintf("%d", result.OrderID)),
		Value:    url.QueryEscape(result.Email),
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: false, // the confirmation page reads it client side
		SameSite: http.SameSiteLaxMode,
	})

	if result.Warning != "" {
		result.Warning = localize(r, result.Warning)
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *OrderHandler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, apiMessage{
			Error: validationErr.Message,
			Code:  "invalid_request",
		})
	case errors.Is(err, models.ErrEmptyCart):
		writeError(w, r, http.StatusBadRequest, "cart_empty")
	default:
		log.Printf("Checkout failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "order_creation_failed")
	}
}

// orderVerifyResponse wraps the provider state with the delivery outcome.
// Terminal tells the confirmation page whether polling can stop.
type orderVerifyResponse struct {
	*models.OrderVerification
	TicketsSent bool `json:"ticketsSent"`
	Terminal    bool `json:"terminal"`
}

// VerifyOrder handles GET /api/orders/{orderID}/verify. The buyer email is
// taken from the email query parameter first, then from the correlation
// cookie set at checkout. On the first successful verification the tickets
// are emailed automatically, best effort.
func (h *OrderHandler) VerifyOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	email := r.URL.Query().Get("email")
	if email == "" {
		email = h.correlatedEmail(r, orderID)
	}

	verification, err := h.verification.VerifyOrder(r.Context(), orderID, email)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			writeError(w, r, http.StatusNotFound, "order_not_found")
			return
		}
		log.Printf("Order %s: verification failed: %v", orderID, err)
		writeError(w, r, http.StatusBadGateway, "verification_failed")
		return
	}

	resp := orderVerifyResponse{
		OrderVerification: verification,
		Terminal:          verification.State.IsTerminal(),
	}

	if verification.State == models.VerificationSuccess {
		h.clearCartOnce(w, r, verification.OrderID)

		if verification.Customer.Email != "" {
			if _, already := h.autoSent.LoadOrStore(verification.OrderID, true); !already {
				if err := h.verification.SendTickets(r.Context(), verification.OrderID, verification.Customer.Email, ""); err != nil {
					log.Printf("Order %s: automatic ticket delivery failed: %v", verification.OrderID, err)
					h.autoSent.Delete(verification.OrderID)
				} else {
					resp.TicketsSent = true
				}
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// clearCartOnce empties the session cart the first time an order verifies as
// successful. Failed or pending verifications never touch the cart.
func (h *OrderHandler) clearCartOnce(w http.ResponseWriter, r *http.Request, orderID string) {
	if _, already := h.cartCleared.LoadOrStore(orderID, true); already {
		return
	}

	session, _ := h.store.Get(r, sessionName)
	if session == nil {
		return
	}

	persistence := &sessionCartPersistence{session: session, r: r, w: w}
	if err := persistence.Save(&models.Cart{}); err != nil {
		log.Printf("Order %s: failed to clear cart after confirmation: %v", orderID, err)
		h.cartCleared.Delete(orderID)
	}
}

// SendTickets handles POST /api/orders/{orderID}/send-tickets
func (h *OrderHandler) SendTickets(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req struct {
		Email string `json:"email"`
		Mode  string `json:"mode,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	if req.Email == "" {
		req.Email = h.correlatedEmail(r, orderID)
	}
	if !validateEmail(req.Email) {
		writeError(w, r, http.StatusBadRequest, "invalid_email")
		return
	}

	if err := h.verification.SendTickets(r.Context(), orderID, req.Email, req.Mode); err != nil {
		log.Printf("Order %s: ticket delivery failed: %v", orderID, err)
		writeError(w, r, http.StatusBadGateway, "delivery_failed")
		return
	}

	writeMessage(w, r, http.StatusOK, "tickets_sent")
}

// correlatedEmail recovers the buyer email stored in the checkout cookie
func (h *OrderHandler) correlatedEmail(r *http.Request, orderID string) string {
	cookie, err := r.Cookie(orderEmailCookieName(orderID))
	if err != nil {
		return ""
	}
	email, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return email
}
