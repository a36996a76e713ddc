// Package spotify is a minimal Spotify Web API client serving the music
// capability. It owns its client-credentials token and refreshes it lazily.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL    = "https://accounts.spotify.com/api/token"
	maxResponseSize    = 2 << 20
	tokenExpirySkew    = 30 * time.Second
	defaultSearchLimit = 5
)

var ErrMissingCredentials = errors.New("spotify client id and secret are required")

type Config struct {
	ClientID     string        `envconfig:"CLIENT_ID" split_words:"true" required:"true"`
	ClientSecret string        `envconfig:"CLIENT_SECRET" split_words:"true" required:"true"`
	BaseURL      string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.spotify.com/v1"`
	TokenURL     string        `envconfig:"TOKEN_URL" split_words:"true" default:"https://accounts.spotify.com/api/token"`
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
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
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	id := strings.TrimSpace(cfg.ClientID)
	secret := strings.TrimSpace(cfg.ClientSecret)
	if id == "" || secret == "" {
		return nil, ErrMissingCredentials
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultAPIBaseURL
	}
	tokenURL := strings.TrimSpace(cfg.TokenURL)
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:      base,
		tokenURL:     tokenURL,
		clientID:     id,
		clientSecret: secret,
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type Playlist struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	TrackCount  int    `json:"track_count"`
	Owner       string `json:"owner"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-tokenExpirySkew)) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("spotify: build token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify: token request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("spotify: read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify: token http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed tokenResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("spotify: decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", errors.New("spotify: empty access token")
	}

	c.accessToken = parsed.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

type searchResponse struct {
	Playlists struct {
		Items []struct {
			Name         string `json:"name"`
			Description  string `json:"description"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
			Tracks struct {
				Total int `json:"total"`
			} `json:"tracks"`
			Owner struct {
				DisplayName string `json:"display_name"`
			} `json:"owner"`
		} `json:"items"`
	} `json:"playlists"`
}

// SearchPlaylists returns public playlists matching a subject.
func (c *Client) SearchPlaylists(ctx context.Context, subject string, limit int) ([]Playlist, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("spotify: subject is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", subject+" music")
	params.Set("type", "playlist")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("spotify: read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: search http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("spotify: decode search response: %w", err)
	}

	out := make([]Playlist, 0, len(parsed.Playlists.Items))
	for _, item := range parsed.Playlists.Items {
		out = append(out, Playlist{
			Name:        item.Name,
			Description: item.Description,
			URL:         item.ExternalURLs.Spotify,
			TrackCount:  item.Tracks.Total,
			Owner:       item.Owner.DisplayName,
		})
	}
	return out, nil
}
