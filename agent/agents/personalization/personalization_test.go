package personalization

import (
	"context"
	"testing"
	"time"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	profilex "github.com/worldwise-ai/worldwise/agent/profile"
)

func TestPersonalizeAccumulatesProfile(t *testing.T) {
	t.Parallel()

	store := profilex.NewMemoryStore()
	p, err := New(store)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	now := time.Now()
	_, err = p.Personalize(context.Background(), contractx.PersonalizationRequest{
		UserID: "u1", Subject: "Japan", Intent: "food_info", Language: "en", Timestamp: now,
	})
	if err != nil {
		t.Fatalf("Personalize() error = %v", err)
	}
	profile, err := p.Personalize(context.Background(), contractx.PersonalizationRequest{
		UserID: "u1", Subject: "japan", Intent: "news_info", Language: "en", Timestamp: now.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Personalize() error = %v", err)
	}

	if profile.InteractionCount != 2 {
		t.Fatalf("interaction count = %d, want 2", profile.InteractionCount)
	}
	if len(profile.CulturalFocus) != 1 {
		t.Fatalf("cultural focus should dedup case-insensitively: %#v", profile.CulturalFocus)
	}
	if len(profile.PreferredLanguages) != 1 || profile.PreferredLanguages[0] != "en" {
		t.Fatalf("unexpected languages: %#v", profile.PreferredLanguages)
	}
	if !profile.LastInteraction.Equal(now.Add(time.Minute)) {
		t.Fatalf("last interaction = %v", profile.LastInteraction)
	}

	stored, ok, err := store.Load(context.Background(), Namespace, "u1")
	if err != nil || !ok {
		t.Fatalf("Load() = (%v, %v)", ok, err)
	}
	if stored.InteractionCount != 2 {
		t.Fatalf("persisted count = %d, want 2", stored.InteractionCount)
	}
}

func TestPersonalizeSentinelSubjectSkipsFocus(t *testing.T) {
	t.Parallel()

	p, err := New(profilex.NewMemoryStore())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	profile, err := p.Personalize(context.Background(), contractx.PersonalizationRequest{
		UserID: "u1", Subject: "unknown", Intent: "greeting", Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("Personalize() error = %v", err)
	}
	if len(profile.CulturalFocus) != 0 || len(profile.Interests) != 0 {
		t.Fatalf("sentinel subject leaked into profile: %#v", profile)
	}
	if profile.InteractionCount != 1 {
		t.Fatalf("interaction count = %d, want 1", profile.InteractionCount)
	}
}
