package domain

import "context"

// LLMClient defines how the core interacts with a language-model capability.
// The same client serves search-need classification and final generation;
// only the prompt differs.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SearchClient defines how the core reaches a web-search capability.
type SearchClient interface {
	Search(ctx context.Context, query string) (*SearchResultSet, error)
}

// ConversationStore defines conversation persistence
type ConversationStore interface {
	CreateConversation(conv *Conversation) error
	UpdateConversation(conv *Conversation) error
	GetConversation(id ConversationID) (*Conversation, error)
	ListConversationsByUser(userID UserID, limit int) ([]*Conversation, error)
}

// MessageStore defines message persistence
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesByConversation(id ConversationID, limit int) ([]*Message, error)
}

// ProfileStore defines user profile persistence
type ProfileStore interface {
	PutProfile(profile *UserProfile) error
	GetProfile(userID UserID) (*UserProfile, error)
}
