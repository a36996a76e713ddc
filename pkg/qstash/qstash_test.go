package qstash

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPublishSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := MustNew(Config{URL: srv.URL, Token: "tok", Timeout: time.Second})
	err := client.Publish(context.Background(), "interactions", map[string]string{"agent": "conversation"})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if gotPath != "/v2/publish/interactions" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	var payload map[string]string
	if err := json.Unmarshal(gotBody, &payload); err != nil || payload["agent"] != "conversation" {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestPublishHTTPFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := MustNew(Config{URL: srv.URL, Token: "tok"})
	if err := client.Publish(context.Background(), "interactions", map[string]string{}); err == nil {
		t.Fatal("expected error on http failure")
	}
}

func TestPublishEmptyTopic(t *testing.T) {
	t.Parallel()

	client := MustNew(Config{URL: "https://qstash.example.com", Token: "tok"})
	if err := client.Publish(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{Token: "tok"}); err == nil {
		t.Fatal("expected error without url")
	}
	if _, err := NewClient(Config{URL: "https://qstash.example.com"}); err == nil {
		t.Fatal("expected error without token")
	}
}
