package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esther-house/internal/models"
)

func sampleProviderEvent() ProviderEvent {
	return ProviderEvent{
		EventID:     42,
		Name:        "Concert du printemps",
		Description: "Soirée live",
		Start:       "2026-04-18 20:00",
		Category:    "Concert rock",
		Status:      "published",
		Capacity:    300,
		Portal:      "https://img.example.com/portal.jpg",
		Thumbnail:   "https://img.example.com/thumb.jpg",
		Address: ProviderAddress{
			Title:   "Esther House",
			Street:  "Rue du Port",
			Number:  "3",
			Zipcode: "1204",
			City:    "Genève",
			Country: "Suisse",
		},
		Properties: []ProviderEventProperty{
			{Name: "Ouverture des portes", Value: "19h00", Status: "visible"},
			{Name: "interne", Value: "x", Status: "hidden"},
		},
	}
}

func sampleZones() []ProviderZone {
	return []ProviderZone{
		{
			ZoneID: 1,
			Name:   "Parterre",
			Categories: []ProviderCategory{
				{CategoryID: 7, Name: "Plein tarif", Amount: 45},
				{CategoryID: 8, Name: "Tarif réduit", Amount: 25},
			},
		},
		{
			ZoneID: 2,
			Name:   "Balcon",
			Categories: []ProviderCategory{
				{CategoryID: 9, Name: "Balcon", Amount: 35},
			},
		},
	}
}

func TestListEventsMapsProviderShape(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.Events = []ProviderEvent{sampleProviderEvent()}
	ticketing.EventZones[42] = sampleZones()

	catalog := NewEventCatalogService(ticketing)

	events, err := catalog.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "42", event.ID)
	assert.Equal(t, "Concert du printemps", event.Title)
	assert.Equal(t, "2026-04-18 20:00", event.Date)
	assert.Equal(t, models.CategoryConcert, event.Category)
	assert.Equal(t, "https://img.example.com/portal.jpg", event.Image)
	assert.Equal(t, "Esther House, Genève", event.Location)
	assert.Equal(t, "Rue du Port 3", event.Venue.Address)
	assert.Equal(t, "1204 Genève", event.Venue.City)
	assert.True(t, event.Price.Equal(decimal.NewFromInt(25)), "lowest category amount wins")

	// Hidden properties are filtered out
	assert.Equal(t, map[string]string{"Ouverture des portes": "19h00"}, event.Properties)
}

func TestGetEventWithoutZonesStillMaps(t *testing.T) {
	ticketing := NewMockTicketingService()
	ticketing.Events = []ProviderEvent{sampleProviderEvent()}

	catalog := NewEventCatalogService(ticketing)

	event, err := catalog.GetEvent(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, event.Price.IsZero())
}

func TestEventImageFallback(t *testing.T) {
	pe := sampleProviderEvent()
	pe.Portal = ""
	assert.Equal(t, pe.Thumbnail, eventImage(&pe))

	pe.PortalHorizontal = "https://img.example.com/wide.jpg"
	assert.Equal(t, "https://img.example.com/wide.jpg", eventImage(&pe))
}

func TestLowestPrice(t *testing.T) {
	assert.True(t, lowestPrice(nil).IsZero())

	zones := sampleZones()
	assert.True(t, lowestPrice(zones).Equal(decimal.NewFromInt(25)))

	free := []ProviderZone{{Categories: []ProviderCategory{{Amount: 0}}}}
	assert.True(t, lowestPrice(free).IsZero())
}
