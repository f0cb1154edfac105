package services

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"esther-house/internal/models"
)

// EventCatalogService exposes the provider's events in the site's own shape:
// normalized category, flattened venue and the lowest ticket price across
// all zones.
type EventCatalogService struct {
	ticketing TicketingServiceInterface
}

// NewEventCatalogService creates a new event catalog service
func NewEventCatalogService(ticketing TicketingServiceInterface) *EventCatalogService {
	return &EventCatalogService{ticketing: ticketing}
}

// ListEvents fetches all published events with their lowest price. Zone
// lookups run concurrently; an event whose zones cannot be fetched is still
// listed, just without a price.
func (s *EventCatalogService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	providerEvents, err := s.ticketing.GetEvents(ctx, EventListParams{
		WithQuota:      true,
		WithProperties: true,
		Sort:           "date",
	})
	if err != nil {
		return nil, err
	}

	events := make([]*models.Event, len(providerEvents))
	var wg sync.WaitGroup
	for i := range providerEvents {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pe := &providerEvents[i]
			zones, err := s.ticketing.GetEventZones(ctx, pe.EventID)
			if err != nil {
				log.Printf("Event catalog: failed to fetch zones for event %d: %v", pe.EventID, err)
			}
			events[i] = mapEvent(pe, zones)
		}(i)
	}
	wg.Wait()

	return events, nil
}

// GetEvent fetches a single event with its lowest price
func (s *EventCatalogService) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	pe, err := s.ticketing.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	zones, err := s.ticketing.GetEventZones(ctx, eventID)
	if err != nil {
		log.Printf("Event catalog: failed to fetch zones for event %d: %v", eventID, err)
	}

	return mapEvent(pe, zones), nil
}

// GetEventZones returns the raw zone and category layout for an event, used
// by the ticket selection page.
func (s *EventCatalogService) GetEventZones(ctx context.Context, eventID int) ([]ProviderZone, error) {
	return s.ticketing.GetEventZones(ctx, eventID)
}

// mapEvent converts a provider event plus its zones into the site event shape
func mapEvent(pe *ProviderEvent, zones []ProviderZone) *models.Event {
	event := &models.Event{
		ID:          strconv.Itoa(pe.EventID),
		Title:       pe.Name,
		Description: pe.Description,
		Date:        eventDate(pe),
		Location:    venueLocation(pe.Address),
		Image:       eventImage(pe),
		Category:    models.MapCategory(pe.Category),
		Capacity:    pe.Capacity,
		Status:      pe.Status,
		Price:       lowestPrice(zones),
		TicketURL:   pe.PortalLinkPreview,
		Venue: models.Venue{
			Name:    pe.Address.Title,
			Address: strings.TrimSpace(pe.Address.Street + " " + pe.Address.Number),
			City:    strings.TrimSpace(pe.Address.Zipcode + " " + pe.Address.City),
			Country: pe.Address.Country,
		},
	}

	if len(pe.Properties) > 0 {
		event.Properties = make(map[string]string)
		for _, prop := range pe.Properties {
			if prop.Status == "visible" || prop.Status == "" {
				event.Properties[prop.Name] = prop.Value
			}
		}
	}

	return event
}

func eventDate(pe *ProviderEvent) string {
	if pe.Start != "" {
		return pe.Start
	}
	return pe.Date
}

func eventImage(pe *ProviderEvent) string {
	switch {
	case pe.Portal != "":
		return pe.Portal
	case pe.PortalHorizontal != "":
		return pe.PortalHorizontal
	default:
		return pe.Thumbnail
	}
}

func venueLocation(addr ProviderAddress) string {
	parts := make([]string, 0, 2)
	if addr.Title != "" {
		parts = append(parts, addr.Title)
	}
	if addr.City != "" {
		parts = append(parts, addr.City)
	}
	return strings.Join(parts, ", ")
}

// lowestPrice returns the lowest category amount across active zones, zero
// when no priced category exists.
func lowestPrice(zones []ProviderZone) decimal.Decimal {
	lowest := decimal.Zero
	found := false
	for _, zone := range zones {
		for _, cat := range zone.Categories {
			amount := decimal.NewFromFloat(cat.Amount)
			if !found || amount.LessThan(lowest) {
				lowest = amount
				found = true
			}
		}
	}
	return lowest
}
