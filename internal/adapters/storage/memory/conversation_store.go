package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

// ConversationStore is a simple in-memory implementation of
// domain.ConversationStore. It is NOT persistent and is only suitable for
// development / local mode.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
	byUserID      map[domain.UserID][]domain.ConversationID
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		byUserID:      make(map[domain.UserID][]domain.ConversationID),
	}
}

func (s *ConversationStore) CreateConversation(conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conv.ID]; exists {
		return fmt.Errorf("conversation %s already exists", conv.ID)
	}

	s.conversations[conv.ID] = conv
	s.byUserID[conv.UserID] = append(s.byUserID[conv.UserID], conv.ID)
	return nil
}

func (s *ConversationStore) UpdateConversation(conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conv.ID]; !exists {
		return fmt.Errorf("conversation %s: %w", conv.ID, domain.ErrNotFound)
	}

	s.conversations[conv.ID] = conv
	return nil
}

func (s *ConversationStore) GetConversation(id domain.ConversationID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}

	return conv, nil
}

// ListConversationsByUser returns the user's conversations, most recently
// updated first.
func (s *ConversationStore) ListConversationsByUser(userID domain.UserID, limit int) ([]*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	out := make([]*domain.Conversation, 0, len(ids))
	for _, id := range ids {
		if conv, ok := s.conversations[id]; ok {
			out = append(out, conv)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
