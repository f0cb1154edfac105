package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://etickets.infomaniak.com/api/shop", cfg.Ticketing.BaseURL)
	assert.Equal(t, "fr_FR", cfg.Ticketing.Language)
	assert.Equal(t, "1", cfg.Ticketing.Currency)
	assert.Equal(t, "mail.infomaniak.com", cfg.Email.SMTPHost)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, "29187", cfg.Newsletter.DomainID)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ETICKETS_API_KEY", "public-key")
	t.Setenv("ETICKETS_SALES_KEY", "sales-key")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "public-key", cfg.Ticketing.APIKey)
	assert.Equal(t, "sales-key", cfg.Ticketing.SalesKey)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
}

func TestGetEnvAsIntFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}
