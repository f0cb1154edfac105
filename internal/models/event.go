package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EventCategory is the site's own event taxonomy, mapped from the provider's
// free-form category strings.
type EventCategory string

const (
	CategoryConcert    EventCategory = "concert"
	CategoryTheatre    EventCategory = "theatre"
	CategoryExposition EventCategory = "exposition"
	CategoryAutre      EventCategory = "autre"
)

// MapCategory normalizes a provider category string into the site taxonomy.
func MapCategory(category string) EventCategory {
	c := strings.ToLower(category)

	switch {
	case strings.Contains(c, "concert") || strings.Contains(c, "music") ||
		strings.Contains(c, "rock") || strings.Contains(c, "electro") ||
		strings.Contains(c, "jazz"):
		return CategoryConcert
	case strings.Contains(c, "théâtre") || strings.Contains(c, "theater") ||
		strings.Contains(c, "spectacle"):
		return CategoryTheatre
	case strings.Contains(c, "exposition") || strings.Contains(c, "exhibition") ||
		strings.Contains(c, "galerie"):
		return CategoryExposition
	default:
		return CategoryAutre
	}
}

// Venue is the flattened address block of an event.
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Event is the site-facing view of a provider event, with category
// normalized and the lowest price across all zone categories precomputed.
type Event struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Location    string            `json:"location"`
	Image       string            `json:"image,omitempty"`
	Category    EventCategory     `json:"category"`
	Capacity    int               `json:"capacity,omitempty"`
	Status      string            `json:"status"`
	Price       decimal.Decimal   `json:"price"`
	Venue       Venue             `json:"venue"`
	Properties  map[string]string `json:"properties,omitempty"`
	TicketURL   string            `json:"ticketUrl,omitempty"`
}
