package robot

import (
	"context"
	"sync"

	"wastebot/pkg/platform/sentinel"
)

// InMemoryStore keeps robots in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	robots map[string]Robot
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{robots: make(map[string]Robot)}
}

func (s *InMemoryStore) Create(_ context.Context, r Robot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.robots[r.ID] = r
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (Robot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.robots[id]; ok {
		return r, nil
	}
	return Robot{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]Robot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Robot, 0, len(s.robots))
	for _, r := range s.robots {
		out = append(out, r)
	}
	return out, nil
}

func (s *InMemoryStore) ListByAdmin(_ context.Context, adminID string) ([]Robot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Robot
	for _, r := range s.robots {
		if r.AdminID == adminID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, r Robot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.robots[r.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.robots[r.ID] = r
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.robots, id)
	return nil
}
