package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestSearchPlaylistsReusesToken(t *testing.T) {
	t.Parallel()

	var tokenCalls atomic.Int32
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("token method = %s", r.Method)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("missing basic auth header")
		}
		w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected bearer: %s", got)
		}
		w.Write([]byte(`{"playlists":{"items":[
			{"name":"J-Pop Hits","description":"d","external_urls":{"spotify":"https://open.spotify.com/p1"},"tracks":{"total":40},"owner":{"display_name":"spotify"}}
		]}}`))
	}))
	t.Cleanup(apiSrv.Close)

	client, err := NewClient(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		BaseURL:      apiSrv.URL,
		TokenURL:     tokenSrv.URL,
		Timeout:      time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		playlists, err := client.SearchPlaylists(context.Background(), "Japan", 5)
		if err != nil {
			t.Fatalf("SearchPlaylists() error = %v", err)
		}
		if len(playlists) != 1 || playlists[0].Name != "J-Pop Hits" {
			t.Fatalf("unexpected playlists: %#v", playlists)
		}
	}
	if tokenCalls.Load() != 1 {
		t.Fatalf("token calls = %d, want cached single call", tokenCalls.Load())
	}
}

func TestSearchPlaylistsTokenFailure(t *testing.T) {
	t.Parallel()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(tokenSrv.Close)

	client, err := NewClient(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     tokenSrv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.SearchPlaylists(context.Background(), "Japan", 5); err == nil {
		t.Fatal("expected error when token endpoint fails")
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{ClientID: "id"}); err == nil {
		t.Fatal("expected error without client secret")
	}
}
