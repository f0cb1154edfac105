package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"esther-house/internal/models"
)

// NewsletterConfig represents the Infomaniak Newsletter API configuration
type NewsletterConfig struct {
	APIToken string
	DomainID string
	BaseURL  string
}

// NewsletterClient subscribes addresses through the Infomaniak Newsletter
// API. The mailing list lives on the provider side; this client only adds
// subscribers.
type NewsletterClient struct {
	config NewsletterConfig
	client *http.Client
}

// NewNewsletterClient creates a new newsletter API client
func NewNewsletterClient(config NewsletterConfig) *NewsletterClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.infomaniak.com"
	}
	return &NewsletterClient{
		config: config,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether the client has credentials to talk to the API
func (c *NewsletterClient) Enabled() bool {
	return c.config.APIToken != "" && c.config.DomainID != ""
}

// Subscribe adds an email address to the mailing list
func (c *NewsletterClient) Subscribe(ctx context.Context, email string) error {
	if !c.Enabled() {
		return fmt.Errorf("newsletter API is not configured")
	}

	endpoint := fmt.Sprintf("%s/1/newsletters/%s/subscribers", c.config.BaseURL, c.config.DomainID)

	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to marshal subscriber payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("newsletter subscribe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &models.ProviderError{
			Endpoint: "/subscribers",
			Status:   resp.StatusCode,
			Body:     string(body),
		}
	}

	return nil
}
