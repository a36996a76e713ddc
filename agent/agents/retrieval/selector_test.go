package retrieval

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

func staticProvider(records []contractx.Record, err error) contractx.Provider {
	return contractx.ProviderFunc(func(ctx context.Context, subject string, limit int) ([]contractx.Record, error) {
		if err != nil {
			return nil, err
		}
		return records, nil
	})
}

func planWith(subject string, capabilities ...contractx.CapabilityID) contractx.SelectRequest {
	return contractx.SelectRequest{
		Subject: subject,
		Plan: contractx.ExecutionPlan{
			Intent:        "cultural_info",
			TargetSubject: subject,
			Capabilities:  capabilities,
			Agents:        []contractx.AgentID{contractx.AgentDataRetrieval, contractx.AgentConversation},
		},
	}
}

func TestSelectFansOutPerCapability(t *testing.T) {
	t.Parallel()

	selector := NewSelector(map[contractx.CapabilityID]contractx.Provider{
		contractx.CapabilityNews:  staticProvider([]contractx.Record{{"title": "a"}}, nil),
		contractx.CapabilityMusic: staticProvider([]contractx.Record{{"name": "b"}, {"name": "c"}}, nil),
	})

	selection, err := selector.Select(context.Background(), planWith("Japan", contractx.CapabilityNews, contractx.CapabilityMusic))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if selection.Clarification != nil {
		t.Fatal("unexpected clarification")
	}
	if len(selection.Payloads) != 2 {
		t.Fatalf("payload count = %d, want 2", len(selection.Payloads))
	}
	if got := selection.Payloads[contractx.CapabilityMusic]; len(got.Records) != 2 || got.Source != "music_api" {
		t.Fatalf("unexpected music payload: %#v", got)
	}
	if !selection.HasData() {
		t.Fatal("selection with records must report data")
	}
}

func TestSelectFailedProviderYieldsFallbackPayload(t *testing.T) {
	t.Parallel()

	selector := NewSelector(map[contractx.CapabilityID]contractx.Provider{
		contractx.CapabilityNews: staticProvider([]contractx.Record{{"title": "a"}}, nil),
		contractx.CapabilityFood: staticProvider(nil, errors.New("upstream 500")),
	})

	selection, err := selector.Select(context.Background(), planWith("Japan", contractx.CapabilityNews, contractx.CapabilityFood))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	fallback, ok := selection.Payloads[contractx.CapabilityFood]
	if !ok {
		t.Fatal("failed capability must still be keyed in payloads")
	}
	if fallback.Message != "not available" || fallback.Source != "food_fallback" {
		t.Fatalf("unexpected fallback payload: %#v", fallback)
	}
	if len(selection.Payloads[contractx.CapabilityNews].Records) != 1 {
		t.Fatal("healthy capability lost its records")
	}
}

func TestSelectMissingProviderYieldsFallbackPayload(t *testing.T) {
	t.Parallel()

	selector := NewSelector(nil)

	selection, err := selector.Select(context.Background(), planWith("Japan", contractx.CapabilityMovies))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	got, ok := selection.Payloads[contractx.CapabilityMovies]
	if !ok || got.Source != "movies_fallback" {
		t.Fatalf("unexpected payload for unprovided capability: %#v", got)
	}
	if selection.HasData() {
		t.Fatal("fallback-only selection must not report data")
	}
}

func TestSelectEmptySubjectShortCircuitsToClarification(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	provider := contractx.ProviderFunc(func(ctx context.Context, subject string, limit int) ([]contractx.Record, error) {
		calls.Add(1)
		return []contractx.Record{{"name": "x"}}, nil
	})
	selector := NewSelector(map[contractx.CapabilityID]contractx.Provider{
		contractx.CapabilityRestaurants: provider,
	})

	selection, err := selector.Select(context.Background(), planWith("", contractx.CapabilityRestaurants))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if selection.Clarification == nil {
		t.Fatal("subjectless request must clarify")
	}
	if calls.Load() != 0 {
		t.Fatal("providers must not be called on the clarification path")
	}
}

func TestSelectNewsWorksWithoutSubject(t *testing.T) {
	t.Parallel()

	selector := NewSelector(map[contractx.CapabilityID]contractx.Provider{
		contractx.CapabilityNews: staticProvider([]contractx.Record{{"title": "world"}}, nil),
	})

	selection, err := selector.Select(context.Background(), planWith("", contractx.CapabilityNews))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if selection.Clarification != nil {
		t.Fatal("news-only request must not clarify on empty subject")
	}
	if len(selection.Payloads[contractx.CapabilityNews].Records) != 1 {
		t.Fatalf("unexpected news payload: %#v", selection.Payloads[contractx.CapabilityNews])
	}
}

func TestSelectSkipsUnknownCapability(t *testing.T) {
	t.Parallel()

	selector := NewSelector(nil)

	req := planWith("Japan", contractx.CapabilityNews)
	req.Plan.Capabilities = append(req.Plan.Capabilities, contractx.CapabilityID("weather"))

	selection, err := selector.Select(context.Background(), req)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if _, ok := selection.Payloads["weather"]; ok {
		t.Fatal("unknown capability must not produce a payload")
	}
	if len(selection.Payloads) != 1 {
		t.Fatalf("payload count = %d, want 1", len(selection.Payloads))
	}
}

func TestSelectSlowProviderHitsTimeout(t *testing.T) {
	t.Parallel()

	slow := contractx.ProviderFunc(func(ctx context.Context, subject string, limit int) ([]contractx.Record, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return []contractx.Record{{"title": "late"}}, nil
		}
	})
	selector := NewSelector(map[contractx.CapabilityID]contractx.Provider{
		contractx.CapabilityNews: slow,
	}, WithCallTimeout(10*time.Millisecond))

	selection, err := selector.Select(context.Background(), planWith("Japan", contractx.CapabilityNews))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := selection.Payloads[contractx.CapabilityNews]; got.Source != "news_fallback" {
		t.Fatalf("timed-out provider should fall back, got %#v", got)
	}
}
