package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

// Store implements ConversationStore, MessageStore and ProfileStore on a
// single Firestore client: one conversations collection with a messages
// subcollection per conversation, plus a profiles collection keyed by user.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) conversationsCol() *firestore.CollectionRef {
	return s.client.Collection("conversations")
}

func (s *Store) conversationDoc(id domain.ConversationID) *firestore.DocumentRef {
	return s.conversationsCol().Doc(string(id))
}

func (s *Store) messagesCol(convID domain.ConversationID) *firestore.CollectionRef {
	return s.conversationDoc(convID).Collection("messages")
}

func (s *Store) messageDoc(convID domain.ConversationID, msgID domain.MessageID) *firestore.DocumentRef {
	return s.messagesCol(convID).Doc(string(msgID))
}

func (s *Store) profilesCol() *firestore.CollectionRef {
	return s.client.Collection("profiles")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type conversationDoc struct {
	UserID    string    `firestore:"user_id"`
	Title     string    `firestore:"title"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type messageDoc struct {
	ConversationID string    `firestore:"conversation_id"`
	Role           string    `firestore:"role"`
	Content        string    `firestore:"content"`
	CreatedAt      time.Time `firestore:"created_at"`
}

type profileDoc struct {
	Name  string `firestore:"name"`
	Email string `firestore:"email"`
}

// ─────────────────────────────────────────
// ConversationStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateConversation(conv *domain.Conversation) error {
	ctx := context.Background()

	doc := conversationDoc{
		UserID:    string(conv.UserID),
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}

	_, err := s.conversationDoc(conv.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore CreateConversation: %w", err)
	}
	return nil
}

func (s *Store) UpdateConversation(conv *domain.Conversation) error {
	ctx := context.Background()

	doc := map[string]interface{}{
		"user_id":    string(conv.UserID),
		"title":      conv.Title,
		"created_at": conv.CreatedAt,
		"updated_at": conv.UpdatedAt,
	}

	_, err := s.conversationDoc(conv.ID).Set(ctx, doc, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore UpdateConversation: %w", err)
	}
	return nil
}

func (s *Store) GetConversation(id domain.ConversationID) (*domain.Conversation, error) {
	ctx := context.Background()

	snap, err := s.conversationDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("firestore GetConversation: %w", err)
	}

	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetConversation decode: %w", err)
	}

	return &domain.Conversation{
		ID:        id,
		UserID:    domain.UserID(doc.UserID),
		Title:     doc.Title,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *Store) ListConversationsByUser(userID domain.UserID, limit int) ([]*domain.Conversation, error) {
	ctx := context.Background()

	q := s.conversationsCol().Where("user_id", "==", string(userID)).OrderBy("updated_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Conversation
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListConversationsByUser: %w", err)
		}

		var doc conversationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode conversationDoc: %w", err)
		}

		out = append(out, &domain.Conversation{
			ID:        domain.ConversationID(snap.Ref.ID),
			UserID:    domain.UserID(doc.UserID),
			Title:     doc.Title,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.Message) error {
	ctx := context.Background()

	doc := messageDoc{
		ConversationID: string(msg.ConversationID),
		Role:           string(msg.Role),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}

	_, err := s.messageDoc(msg.ConversationID, msg.ID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetMessagesByConversation(convID domain.ConversationID, limit int) ([]*domain.Message, error) {
	ctx := context.Background()

	// LimitToLast keeps the most recent window while preserving
	// chronological order, matching the memory store's behavior.
	q := s.messagesCol(convID).OrderBy("created_at", firestore.Asc)
	if limit > 0 {
		q = q.LimitToLast(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Message
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetMessagesByConversation: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.Message{
			ID:             domain.MessageID(snap.Ref.ID),
			ConversationID: convID,
			Role:           domain.Role(doc.Role),
			Content:        doc.Content,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// ProfileStore implementation
// ─────────────────────────────────────────

func (s *Store) PutProfile(profile *domain.UserProfile) error {
	ctx := context.Background()

	doc := profileDoc{
		Name:  profile.Name,
		Email: profile.Email,
	}

	_, err := s.profilesCol().Doc(string(profile.UserID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore PutProfile: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(userID domain.UserID) (*domain.UserProfile, error) {
	ctx := context.Background()

	snap, err := s.profilesCol().Doc(string(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("firestore GetProfile: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetProfile decode: %w", err)
	}

	return &domain.UserProfile{
		UserID: userID,
		Name:   doc.Name,
		Email:  doc.Email,
	}, nil
}
