// Package newsapi is a minimal NewsAPI client serving the news capability.
package newsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"context"
)

const (
	defaultBaseURL       = "https://newsapi.org/v2"
	maxResponseSizeBytes = 2 << 20
)

var ErrMissingAPIKey = errors.New("newsapi key is required")

type Config struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://newsapi.org/v2"`
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

type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

type everythingResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

// CulturalNews searches recent articles about a subject's culture. Results
// are deduplicated by URL and placeholder "[Removed]" entries are dropped.
func (c *Client) CulturalNews(ctx context.Context, subject string, limit int) ([]Article, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("newsapi: subject is required")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", subject+" culture")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("newsapi: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed everythingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("newsapi: api status=%s message=%s", parsed.Status, parsed.Message)
	}

	seen := make(map[string]struct{}, len(parsed.Articles))
	out := make([]Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Title == "[Removed]" {
			continue
		}
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
