package memory

import (
	"fmt"
	"sync"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[domain.UserID]*domain.UserProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[domain.UserID]*domain.UserProfile),
	}
}

func (s *ProfileStore) PutProfile(profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile
	return nil
}

func (s *ProfileStore) GetProfile(userID domain.UserID) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	return p, nil
}
