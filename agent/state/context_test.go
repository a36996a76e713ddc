package state

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestContextStoreGetCreatesEmptyContext(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	ctx := store.Get("u1")

	if ctx.UserID != "u1" {
		t.Fatalf("unexpected user id: %s", ctx.UserID)
	}
	if ctx.LastSubject != "" || len(ctx.History) != 0 || len(ctx.Interests) != 0 {
		t.Fatalf("expected empty context, got %#v", ctx)
	}
}

func TestContextStoreUpdateTracksSubjectAndInterests(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	now := time.Now()

	store.Update("u1", "Japan", "cultural_info", now)
	store.Update("u1", "japan", "food_info", now)

	ctx := store.Get("u1")
	if ctx.LastSubject != "japan" {
		t.Fatalf("unexpected last subject: %s", ctx.LastSubject)
	}
	if len(ctx.Interests) != 1 {
		t.Fatalf("expected case-insensitive interest dedup, got %#v", ctx.Interests)
	}
	if len(ctx.History) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(ctx.History))
	}
}

func TestContextStoreUpdateSentinelSubjectKeepsLastSubject(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	now := time.Now()

	store.Update("u1", "Japan", "cultural_info", now)
	store.Update("u1", "unknown", "news_info", now)
	store.Update("u1", "", "greeting", now)

	ctx := store.Get("u1")
	if ctx.LastSubject != "Japan" {
		t.Fatalf("sentinel subject overwrote last subject: %s", ctx.LastSubject)
	}
	if len(ctx.History) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(ctx.History))
	}
	if ctx.History[1].Subject != "" {
		t.Fatalf("sentinel subject should be stored empty, got %q", ctx.History[1].Subject)
	}
}

func TestContextStoreHistoryEvictsOldestPastCapacity(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	now := time.Now()

	for i := 0; i < HistoryCapacity+5; i++ {
		store.Update("u1", fmt.Sprintf("country-%d", i), "cultural_info", now)
	}

	ctx := store.Get("u1")
	if len(ctx.History) != HistoryCapacity {
		t.Fatalf("history length = %d, want %d", len(ctx.History), HistoryCapacity)
	}
	if ctx.History[0].Subject != "country-5" {
		t.Fatalf("oldest surviving turn = %q, want country-5", ctx.History[0].Subject)
	}
	if ctx.History[len(ctx.History)-1].Subject != fmt.Sprintf("country-%d", HistoryCapacity+4) {
		t.Fatalf("newest turn = %q", ctx.History[len(ctx.History)-1].Subject)
	}
}

func TestContextStoreSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	store.Update("u1", "Japan", "cultural_info", time.Now())

	snap := store.Get("u1")
	snap.History[0].Subject = "mutated"
	snap.Interests = append(snap.Interests, "mutated")

	fresh := store.Get("u1")
	if fresh.History[0].Subject != "Japan" {
		t.Fatalf("snapshot mutation leaked into store: %q", fresh.History[0].Subject)
	}
	if len(fresh.Interests) != 1 {
		t.Fatalf("snapshot append leaked into store: %#v", fresh.Interests)
	}
}

func TestRecentWindow(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	now := time.Now()
	for i := 0; i < 5; i++ {
		store.Update("u1", fmt.Sprintf("country-%d", i), "cultural_info", now)
	}

	recent := store.Get("u1").RecentWindow(3)
	if len(recent) != 3 {
		t.Fatalf("window length = %d, want 3", len(recent))
	}
	if recent[0].Subject != "country-2" || recent[2].Subject != "country-4" {
		t.Fatalf("unexpected window: %#v", recent)
	}
}

func TestContextStoreConcurrentUpdatesSameUser(t *testing.T) {
	t.Parallel()

	store := NewContextStore()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("u1", "Japan", "cultural_info", now)
		}()
	}
	wg.Wait()

	ctx := store.Get("u1")
	if len(ctx.History) != HistoryCapacity {
		t.Fatalf("history length = %d, want %d", len(ctx.History), HistoryCapacity)
	}
	if len(ctx.Interests) != 1 {
		t.Fatalf("interests = %#v, want a single deduped entry", ctx.Interests)
	}
}
