package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ojeda-dev/ayun-chat/internal/app/chat"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
	"github.com/ojeda-dev/ayun-chat/internal/observability"
)

// historyLimit is how many stored turns are fed back into the pipeline as
// conversation context.
const historyLimit = 20

const defaultTitle = "New Conversation"

// Service persists conversations and their messages, and runs the chat
// pipeline for every new user turn.
type Service struct {
	pipeline      *chat.Pipeline
	conversations domain.ConversationStore
	messages      domain.MessageStore
	now           func() time.Time
}

func NewService(
	pipeline *chat.Pipeline,
	conversations domain.ConversationStore,
	messages domain.MessageStore,
) *Service {
	return &Service{
		pipeline:      pipeline,
		conversations: conversations,
		messages:      messages,
		now:           time.Now,
	}
}

type StartConversationInput struct {
	UserID domain.UserID
	Title  string
}

type StartConversationOutput struct {
	Conversation *domain.Conversation
}

func (s *Service) StartConversation(ctx context.Context, in StartConversationInput) (*StartConversationOutput, error) {
	now := s.now()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultTitle
	}

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)
	log.Info("starting new conversation", "title", title)

	conv := &domain.Conversation{
		ID:        domain.ConversationID(uuid.NewString()),
		UserID:    in.UserID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.conversations.CreateConversation(conv); err != nil {
		log.Error("failed to create conversation", "error", err)
		return nil, err
	}

	log.Info("conversation started", "conversation_id", conv.ID)

	return &StartConversationOutput{Conversation: conv}, nil
}

type SendMessageInput struct {
	ConversationID domain.ConversationID
	UserID         domain.UserID
	Text           string
}

type SendMessageOutput struct {
	UserMessage      *domain.Message
	AssistantMessage *domain.Message

	// Pipeline diagnostics, passed through for client-side transparency.
	SearchAnalysis domain.SearchDecision
	SearchResults  *domain.SearchResultSet
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	conv, err := s.conversations.GetConversation(in.ConversationID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", conv.ID,
		"user_id", conv.UserID,
	)
	log.Info("sending message")

	userMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv.ID,
		Role:           domain.RoleUser,
		Content:        in.Text,
		CreatedAt:      s.now(),
	}

	if err := s.messages.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	// History already includes the turn appended above, so it ends with the
	// user message the pipeline requires.
	history, err := s.messages.GetMessagesByConversation(conv.ID, historyLimit)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	payload, err := s.pipeline.HandleTurn(ctx, history)
	if err != nil {
		log.Error("pipeline failed", "error", err)
		return nil, err
	}

	assistantMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        payload.Content,
		CreatedAt:      s.now(),
	}

	if err := s.messages.AppendMessage(assistantMsg); err != nil {
		log.Error("failed to append assistant message", "error", err)
		return nil, err
	}

	conv.UpdatedAt = s.now()
	if err := s.conversations.UpdateConversation(conv); err != nil {
		log.Error("failed to update conversation", "error", err)
		return nil, err
	}

	log.Info("send message completed", "needs_search", payload.SearchAnalysis.NeedsSearch)

	return &SendMessageOutput{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		SearchAnalysis:   payload.SearchAnalysis,
		SearchResults:    payload.SearchResults,
	}, nil
}

func (s *Service) GetTimeline(
	ctx context.Context,
	conversationID domain.ConversationID,
	limit int,
) (*domain.Conversation, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", conversationID,
		"limit", limit,
	)

	conv, err := s.conversations.GetConversation(conversationID)
	if err != nil {
		log.Error("failed to get conversation", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messages.GetMessagesByConversation(conversationID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched conversation timeline", "message_count", len(msgs))

	return conv, msgs, nil
}

func (s *Service) ListConversations(
	ctx context.Context,
	userID domain.UserID,
	limit int,
) ([]*domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.conversations.ListConversationsByUser(userID, limit)
}
