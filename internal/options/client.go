// Package options talks to the external option provider: the read-only
// service that knows, for every setting category, which versioned choices
// are available for a new scenario.
package options

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"scenario-builder/internal/model"
)

// Client fetches setting-category options from the option provider API.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  *log.Logger
}

// NewClient creates an option provider client.
// If baseURL is empty, defaults to "http://localhost:8090".
func NewClient(apiKey, baseURL string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Logger:  logger,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ProviderError represents an error from the option provider API.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// optionsResponse is the provider's wire format for one category's options.
type optionsResponse struct {
	CategoryKey string         `json:"category_key"`
	Options     []model.Option `json:"options"`
}

// FetchOptions retrieves the valid choices for one setting category.
// The call is a pure idempotent read; failures affect only this category.
func (c *Client) FetchOptions(ctx context.Context, categoryKey string) ([]model.Option, error) {
	if categoryKey == "" {
		return nil, fmt.Errorf("category key is required")
	}

	// Check cache first (only if enabled for development).
	if cache := GetCache(); cache != nil {
		if cached, found := cache.Get(categoryKey); found {
			c.Logger.Debug("option cache hit", "category", categoryKey, "count", len(cached))
			return cached, nil
		}
	}

	path := fmt.Sprintf("/v1/scenario-settings/%s/options", categoryKey)
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.Logger.Error("option fetch failed", "category", categoryKey, "duration", duration, "error", err)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug("option fetch response", "category", categoryKey, "status", resp.StatusCode, "duration", duration)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusNotFound:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "UNKNOWN_CATEGORY",
			Message:    fmt.Sprintf("provider has no setting category %q", categoryKey),
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "unauthorized: invalid API key or insufficient permissions",
		}
	default:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "PROVIDER_ERROR",
			Message:    fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result optionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode options for %q: %w", categoryKey, err)
	}

	if cache := GetCache(); cache != nil {
		cache.Set(categoryKey, result.Options)
	}

	c.Logger.Info("options loaded", "category", categoryKey, "count", len(result.Options))
	return result.Options, nil
}
