package state

import (
	"strings"
	"sync"
	"time"
)

// HistoryCapacity bounds the per-user rolling history. The oldest turn is
// evicted once the bound is exceeded.
const HistoryCapacity = 10

// Turn is one completed, non-clarifying request.
type Turn struct {
	Subject   string    `json:"subject,omitempty"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the per-user rolling memory read before
// classification and written after every non-clarifying completed request.
// It lives for the process lifetime; durability is out of scope.
type ConversationContext struct {
	UserID      string   `json:"user_id"`
	LastSubject string   `json:"last_subject,omitempty"`
	History     []Turn   `json:"history,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

// RecentWindow returns up to n most recent turns, oldest first.
func (c ConversationContext) RecentWindow(n int) []Turn {
	if n <= 0 || len(c.History) == 0 {
		return nil
	}
	if len(c.History) > n {
		return append([]Turn(nil), c.History[len(c.History)-n:]...)
	}
	return append([]Turn(nil), c.History...)
}

func sentinelSubject(subject string) bool {
	switch strings.ToLower(strings.TrimSpace(subject)) {
	case "", "unknown", "none", "null":
		return true
	}
	return false
}

type contextEntry struct {
	mu  sync.Mutex
	ctx ConversationContext
}

// ContextStore is a keyed in-memory store of conversation contexts. Access is
// serialized per user_id so concurrent requests from the same user cannot
// interleave partial updates.
type ContextStore struct {
	mu      sync.Mutex
	entries map[string]*contextEntry
}

func NewContextStore() *ContextStore {
	return &ContextStore{entries: make(map[string]*contextEntry)}
}

func (s *ContextStore) entry(userID string) *contextEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &contextEntry{ctx: ConversationContext{UserID: userID}}
		s.entries[userID] = e
	}
	return e
}

// Get returns a snapshot of the user's context, creating an empty one on
// first access. The snapshot is a copy; mutating it does not affect the
// store.
func (s *ContextStore) Get(userID string) ConversationContext {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneContext(e.ctx)
}

// Update appends a turn to the user's history, evicting the oldest entry past
// capacity, and overwrites LastSubject when the new subject is neither empty
// nor a sentinel value.
func (s *ContextStore) Update(userID, subject, intent string, ts time.Time) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !sentinelSubject(subject) {
		subject = strings.TrimSpace(subject)
		e.ctx.LastSubject = subject
		if !containsFold(e.ctx.Interests, subject) {
			e.ctx.Interests = append(e.ctx.Interests, subject)
		}
	} else {
		subject = ""
	}

	e.ctx.History = append(e.ctx.History, Turn{
		Subject:   subject,
		Intent:    strings.TrimSpace(intent),
		Timestamp: ts,
	})
	if len(e.ctx.History) > HistoryCapacity {
		e.ctx.History = append(e.ctx.History[:0], e.ctx.History[len(e.ctx.History)-HistoryCapacity:]...)
	}
}

func cloneContext(c ConversationContext) ConversationContext {
	out := c
	out.History = append([]Turn(nil), c.History...)
	out.Interests = append([]string(nil), c.Interests...)
	return out
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
