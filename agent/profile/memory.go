package profile

import (
	"context"
	"sync"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// MemoryStore is the in-process profile store used when no database is
// configured. Profiles vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]contractx.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]contractx.Profile)}
}

func (s *MemoryStore) Save(_ context.Context, namespace, userID string, p contractx.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[namespace+"/"+userID] = p
	return nil
}

func (s *MemoryStore) Load(_ context.Context, namespace, userID string) (contractx.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[namespace+"/"+userID]
	return p, ok, nil
}
