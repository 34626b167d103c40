// Package graph provides a client for the Facebook Graph API leadgen endpoint.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the Graph API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// Config configures the Graph API client.
type Config struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// NewClient creates a new Graph API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Field is one submitted form field on a leadgen entry.
type Field struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// LeadgenDetails is the Graph API representation of a submitted lead form.
type LeadgenDetails struct {
	ID          string  `json:"id"`
	CreatedTime string  `json:"created_time"`
	FieldData   []Field `json:"field_data"`
}

// LeadgenDetails fetches the submitted form fields for a leadgen ID.
func (c *Client) LeadgenDetails(ctx context.Context, leadgenID string) (LeadgenDetails, error) {
	if leadgenID == "" {
		return LeadgenDetails{}, fmt.Errorf("leadgen ID is required")
	}

	endpoint := c.baseURL + "/" + url.PathEscape(leadgenID) + "?access_token=" + url.QueryEscape(c.accessToken)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return LeadgenDetails{}, fmt.Errorf("failed to create leadgen request: %w", err)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return LeadgenDetails{}, fmt.Errorf("leadgen request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return LeadgenDetails{}, fmt.Errorf("graph API returned %d: %s", resp.StatusCode, string(body))
	}

	var details LeadgenDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return LeadgenDetails{}, fmt.Errorf("failed to decode leadgen response: %w", err)
	}

	if len(details.FieldData) == 0 {
		return LeadgenDetails{}, fmt.Errorf("leadgen %s returned no field data", leadgenID)
	}

	return details, nil
}
