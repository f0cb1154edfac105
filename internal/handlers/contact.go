package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"esther-house/internal/services"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validateEmail validates email format
func validateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ContactHandler serves the contact, venue booking and newsletter forms
type ContactHandler struct {
	email      services.EmailServiceInterface
	newsletter services.NewsletterServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(email services.EmailServiceInterface, newsletter services.NewsletterServiceInterface) *ContactHandler {
	return &ContactHandler{email: email, newsletter: newsletter}
}

// Contact handles POST /api/contact. The notification to the house inbox
// must succeed; the confirmation to the sender is best effort.
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req services.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Message) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}
	if !validateEmail(req.Email) {
		writeError(w, r, http.StatusBadRequest, "invalid_email")
		return
	}

	if err := h.email.SendContactMessage(&req); err != nil {
		log.Printf("Failed to forward contact message from %s: %v", req.Email, err)
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	if err := h.email.SendContactConfirmation(&req); err != nil {
		log.Printf("Failed to send contact confirmation to %s: %v", req.Email, err)
	}

	writeMessage(w, r, http.StatusOK, "message_sent")
}

// Booking handles POST /api/booking. Each inquiry gets a short reference the
// house and the client can quote in followups.
func (h *ContactHandler) Booking(w http.ResponseWriter, r *http.Request) {
	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.EventType) == "" ||
		strings.TrimSpace(req.EventDate) == "" || req.GuestCount <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}
	if !validateEmail(req.Email) {
		writeError(w, r, http.StatusBadRequest, "invalid_email")
		return
	}

	req.Reference = "RES-" + strings.ToUpper(uuid.New().String()[:8])

	if err := h.email.SendBookingInquiry(&req); err != nil {
		log.Printf("Failed to forward booking inquiry %s: %v", req.Reference, err)
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	if err := h.email.SendBookingConfirmation(&req); err != nil {
		log.Printf("Failed to send booking confirmation %s to %s: %v", req.Reference, req.Email, err)
	}

	writeJSON(w, http.StatusOK, struct {
		Message   string `json:"message"`
		Reference string `json:"reference"`
	}{
		Message:   localize(r, "booking_received"),
		Reference: req.Reference,
	})
}

// Newsletter handles POST /api/newsletter. The mailing list subscription via
// the provider API is best effort; the notification and welcome mails are
// sent either way so no signup is lost.
func (h *ContactHandler) Newsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	if !validateEmail(req.Email) {
		writeError(w, r, http.StatusBadRequest, "invalid_email")
		return
	}

	if err := h.newsletter.Subscribe(r.Context(), req.Email); err != nil {
		log.Printf("Newsletter API subscription failed for %s: %v", req.Email, err)
	}

	if err := h.email.SendNewsletterNotification(req.Email); err != nil {
		log.Printf("Failed to notify newsletter signup %s: %v", req.Email, err)
	}
	if err := h.email.SendNewsletterWelcome(req.Email); err != nil {
		log.Printf("Failed to send newsletter welcome to %s: %v", req.Email, err)
	}

	writeMessage(w, r, http.StatusOK, "newsletter_subscribed")
}
