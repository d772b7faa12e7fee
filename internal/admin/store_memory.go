package admin

import (
	"context"
	"strings"
	"sync"

	"wastebot/pkg/platform/sentinel"
)

// InMemoryStore keeps admins in process memory. It intentionally favors
// clarity over performance and is the default for development and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	admins  map[string]Admin
	byEmail map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		admins:  make(map[string]Admin),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *InMemoryStore) Create(_ context.Context, a Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := emailKey(a.Email)
	if _, taken := s.byEmail[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	s.admins[a.ID] = a
	s.byEmail[key] = a.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.admins[id]; ok {
		return a, nil
	}
	return Admin{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byEmail[emailKey(email)]; ok {
		return s.admins[id], nil
	}
	return Admin{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Update(_ context.Context, a Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.admins[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	// Email is immutable after registration; keep the index consistent.
	a.Email = current.Email
	s.admins[a.ID] = a
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, a)
	}
	return out, nil
}
