package memory

import (
	"sync"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.ConversationID][]*domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.ConversationID][]*domain.Message),
	}
}

func (s *MessageStore) AppendMessage(msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	return nil
}

// GetMessagesByConversation returns the last `limit` messages in
// chronological order. limit <= 0 returns everything.
func (s *MessageStore) GetMessagesByConversation(id domain.ConversationID, limit int) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[id]
	if limit > 0 && len(msgs) > limit {
		return msgs[len(msgs)-limit:], nil
	}
	return msgs, nil
}
