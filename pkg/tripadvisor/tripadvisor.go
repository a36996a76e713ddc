// Package tripadvisor is a minimal TripAdvisor Content API client serving the
// restaurants, landmarks and destinations capabilities.
package tripadvisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.content.tripadvisor.com/api/v1"
	maxResponseSize = 2 << 20
)

// Category filters accepted by the location search endpoint.
const (
	CategoryRestaurants = "restaurants"
	CategoryAttractions = "attractions"
	CategoryGeos        = "geos"
)

var ErrMissingAPIKey = errors.New("tripadvisor api key is required")

type Config struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.content.tripadvisor.com/api/v1"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    base,
		apiKey:     key,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type Location struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
}

type searchResponse struct {
	Data []struct {
		LocationID string `json:"location_id"`
		Name       string `json:"name"`
		AddressObj struct {
			AddressString string `json:"address_string"`
		} `json:"address_obj"`
	} `json:"data"`
}

// SearchLocations queries the location search endpoint for a subject within
// one category (restaurants, attractions, geos).
func (c *Client) SearchLocations(ctx context.Context, subject, category string, limit int) ([]Location, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("tripadvisor: subject is required")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("searchQuery", subject)
	if category != "" {
		params.Set("category", category)
	}
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/location/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tripadvisor: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tripadvisor: execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("tripadvisor: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tripadvisor: http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("tripadvisor: decode response: %w", err)
	}

	out := make([]Location, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		out = append(out, Location{
			LocationID: d.LocationID,
			Name:       d.Name,
			Address:    d.AddressObj.AddressString,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
