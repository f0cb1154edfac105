package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"esther-house/internal/middleware"
)

// apiMessage is the envelope for error and status responses
type apiMessage struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// messages holds the user-facing strings per locale. Keys are stable codes
// the frontend can also switch on.
var messages = map[string]map[string]string{
	"fr": {
		"invalid_request":          "Requête invalide.",
		"invalid_quantity":         "Quantité invalide.",
		"cart_empty":               "Votre panier est vide.",
		"item_not_found":           "Article introuvable dans le panier.",
		"order_creation_failed":    "La commande n'a pas pu être créée. Veuillez réessayer.",
		"payment_link_unavailable": "Votre commande a été créée mais le lien de paiement est indisponible. Consultez votre page de confirmation.",
		"order_not_found":          "Commande introuvable.",
		"verification_failed":      "La vérification de la commande a échoué. Veuillez réessayer.",
		"delivery_failed":          "L'envoi des billets a échoué. Veuillez réessayer.",
		"tickets_sent":             "Vos billets ont été envoyés par email.",
		"event_not_found":          "Événement introuvable.",
		"events_unavailable":       "La billetterie est momentanément indisponible.",
		"message_sent":             "Votre message a bien été envoyé.",
		"booking_received":         "Votre demande de réservation a bien été reçue.",
		"newsletter_subscribed":    "Merci, votre inscription à la newsletter est confirmée.",
		"invalid_email":            "Adresse email invalide.",
		"internal_error":           "Une erreur est survenue. Veuillez réessayer.",
	},
	"en": {
		"invalid_request":          "Invalid request.",
		"invalid_quantity":         "Invalid quantity.",
		"cart_empty":               "Your cart is empty.",
		"item_not_found":           "Item not found in cart.",
		"order_creation_failed":    "The order could not be created. Please try again.",
		"payment_link_unavailable": "Your order was created but the payment link is unavailable. Check your confirmation page.",
		"order_not_found":          "Order not found.",
		"verification_failed":      "Order verification failed. Please try again.",
		"delivery_failed":          "Ticket delivery failed. Please try again.",
		"tickets_sent":             "Your tickets have been sent by email.",
		"event_not_found":          "Event not found.",
		"events_unavailable":       "The ticket shop is temporarily unavailable.",
		"message_sent":             "Your message has been sent.",
		"booking_received":         "Your booking inquiry has been received.",
		"newsletter_subscribed":    "Thank you, your newsletter subscription is confirmed.",
		"invalid_email":            "Invalid email address.",
		"internal_error":           "Something went wrong. Please try again.",
	},
}

// localize returns the message for code in the request's locale
func localize(r *http.Request, code string) string {
	locale := middleware.LocaleFromContext(r.Context())
	if msg, ok := messages[locale][code]; ok {
		return msg
	}
	if msg, ok := messages[middleware.LocaleFR][code]; ok {
		return msg
	}
	return code
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// writeError writes a localized error response
func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, status, apiMessage{Error: localize(r, code), Code: code})
}

// writeMessage writes a localized status message
func writeMessage(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, status, apiMessage{Message: localize(r, code), Code: code})
}
