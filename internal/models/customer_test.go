package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() CustomerInfo {
	return CustomerInfo{
		FirstName:  "Marie",
		LastName:   "Dupont",
		Email:      "marie.dupont@example.ch",
		Phone:      "+41 79 123 45 67",
		Address:    "Rue du Marché 12",
		City:       "Genève",
		PostalCode: "1204",
		Country:    "Suisse",
	}
}

func TestCustomerInfoValidate(t *testing.T) {
	customer := validCustomer()
	assert.NoError(t, customer.Validate())
}

func TestCustomerInfoValidateRequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*CustomerInfo)
	}{
		{"firstName", func(c *CustomerInfo) { c.FirstName = "" }},
		{"lastName", func(c *CustomerInfo) { c.LastName = "  " }},
		{"email", func(c *CustomerInfo) { c.Email = "" }},
		{"phone", func(c *CustomerInfo) { c.Phone = "" }},
		{"address", func(c *CustomerInfo) { c.Address = "" }},
		{"city", func(c *CustomerInfo) { c.City = "" }},
		{"postalCode", func(c *CustomerInfo) { c.PostalCode = "" }},
		{"country", func(c *CustomerInfo) { c.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			customer := validCustomer()
			tt.mutate(&customer)

			err := customer.Validate()
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCustomerInfoValidateEmail(t *testing.T) {
	customer := validCustomer()
	customer.Email = "not-an-email"
	assert.Error(t, customer.Validate())

	customer.Email = "marie@localhost"
	assert.Error(t, customer.Validate())

	customer.Email = strings.Repeat("a", 250) + "@example.com"
	assert.Error(t, customer.Validate())
}
