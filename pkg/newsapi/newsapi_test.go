package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestCulturalNewsSuccess(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("unexpected api key header: %s", got)
		}
		if got := r.URL.Query().Get("q"); got != "Japan culture" {
			t.Errorf("unexpected query: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Festival season","url":"https://example.com/1","source":{"name":"Example"}},
			{"title":"[Removed]","url":"https://example.com/2"},
			{"title":"Festival season dup","url":"https://example.com/1"},
			{"title":"Tea ceremony","url":"https://example.com/3"}
		]}`))
	})

	articles, err := client.CulturalNews(context.Background(), "Japan", 5)
	if err != nil {
		t.Fatalf("CulturalNews() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("article count = %d, want 2 after removed/dup filtering", len(articles))
	}
	if articles[0].Title != "Festival season" || articles[1].Title != "Tea ceremony" {
		t.Fatalf("unexpected articles: %#v", articles)
	}
}

func TestCulturalNewsRespectsLimit(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"a","url":"https://example.com/a"},
			{"title":"b","url":"https://example.com/b"},
			{"title":"c","url":"https://example.com/c"}
		]}`))
	})

	articles, err := client.CulturalNews(context.Background(), "Japan", 2)
	if err != nil {
		t.Fatalf("CulturalNews() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("article count = %d, want 2", len(articles))
	}
}

func TestCulturalNewsAPIErrorStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"apiKeyInvalid"}`))
	})

	if _, err := client.CulturalNews(context.Background(), "Japan", 5); err == nil {
		t.Fatal("expected error on api error status")
	}
}

func TestCulturalNewsHTTPFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.CulturalNews(context.Background(), "Japan", 5); err == nil {
		t.Fatal("expected error on http failure")
	}
}

func TestCulturalNewsEmptySubject(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent for empty subject")
	})

	if _, err := client.CulturalNews(context.Background(), "  ", 5); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
