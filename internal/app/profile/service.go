package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

// Service holds the logic of reading and writing the user profile.
type Service struct {
	store domain.ProfileStore
}

func NewService(store domain.ProfileStore) *Service {
	return &Service{store: store}
}

// Get returns the user's profile. A user that never saved one gets an empty
// profile back, not an error, mirroring a load-with-default lookup.
func (s *Service) Get(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	p, err := s.store.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.UserProfile{UserID: userID}, nil
		}
		return nil, err
	}
	return p, nil
}

// Put stores the user's profile, replacing any previous one.
func (s *Service) Put(ctx context.Context, userID domain.UserID, name, email string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	p := &domain.UserProfile{
		UserID: userID,
		Name:   name,
		Email:  email,
	}
	if err := s.store.PutProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}
