package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"esther-house/internal/models"
	"esther-house/internal/services"
)

// EventHandler proxies the provider's event catalog to the frontend
type EventHandler struct {
	catalog services.EventCatalogServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(catalog services.EventCatalogServiceInterface) *EventHandler {
	return &EventHandler{catalog: catalog}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.ListEvents(r.Context())
	if err != nil {
		log.Printf("Failed to list events: %v", err)
		writeError(w, r, http.StatusBadGateway, "events_unavailable")
		return
	}

	if events == nil {
		events = []*models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{eventID}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	event, err := h.catalog.GetEvent(r.Context(), eventID)
	if err != nil {
		h.writeCatalogError(w, r, eventID, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// GetEventZones handles GET /api/events/{eventID}/zones
func (h *EventHandler) GetEventZones(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	zones, err := h.catalog.GetEventZones(r.Context(), eventID)
	if err != nil {
		h.writeCatalogError(w, r, eventID, err)
		return
	}

	if zones == nil {
		zones = []services.ProviderZone{}
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *EventHandler) writeCatalogError(w http.ResponseWriter, r *http.Request, eventID int, err error) {
	var providerErr *models.ProviderError
	if errors.As(err, &providerErr) && providerErr.Status == 404 {
		writeError(w, r, http.StatusNotFound, "event_not_found")
		return
	}
	log.Printf("Failed to fetch event %d: %v", eventID, err)
	writeError(w, r, http.StatusBadGateway, "events_unavailable")
}
