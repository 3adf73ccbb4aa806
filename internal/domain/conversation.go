package domain

// Message represents one turn in a conversation timeline (user or assistant).
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Role           Role
	Content        string
	CreatedAt      Timestamp

	// IsLoading marks the transient client-side placeholder that is shown
	// while a reply is in flight. It is replaced, never mutated, once the
	// real content arrives; the server only echoes it through.
	IsLoading bool
}

// Conversation groups a user's messages under one thread.
type Conversation struct {
	ID        ConversationID
	UserID    UserID
	Title     string
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// UserProfile holds the few identity fields the front-end shows.
type UserProfile struct {
	UserID UserID
	Name   string
	Email  string
}
