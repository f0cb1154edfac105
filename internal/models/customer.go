package models

import (
	"regexp"
	"strings"
)

// CustomerInfo is the billing identity captured once at checkout time. It is
// forwarded to the ticketing provider and not persisted beyond the
// order-creation request, aside from the transient email correlation record.
type CustomerInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

var customerEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks that every field required by the provider's order-create
// endpoint is present and well formed.
func (c *CustomerInfo) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"postalCode", c.PostalCode},
		{"country", c.Country},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: "is required"}
		}
	}

	if len(c.Email) > 255 {
		return &ValidationError{Field: "email", Message: "must be less than 255 characters"}
	}

	if !customerEmailRegex.MatchString(c.Email) {
		return &ValidationError{Field: "email", Message: "format is invalid"}
	}

	return nil
}
