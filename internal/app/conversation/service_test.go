package conversation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojeda-dev/ayun-chat/internal/adapters/llm"
	"github.com/ojeda-dev/ayun-chat/internal/adapters/search"
	"github.com/ojeda-dev/ayun-chat/internal/adapters/storage/memory"
	"github.com/ojeda-dev/ayun-chat/internal/app/chat"
	"github.com/ojeda-dev/ayun-chat/internal/app/conversation"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

func newTestService() *conversation.Service {
	pipeline := chat.NewPipeline(llm.NewMockLLM(), search.NewMockSearch())
	return conversation.NewService(pipeline, memory.NewConversationStore(), memory.NewMessageStore())
}

func TestStartConversationAndSendMessage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	out, err := svc.StartConversation(ctx, conversation.StartConversationInput{
		UserID: domain.UserID("test-user"),
		Title:  "Test conversation",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Conversation.ID)
	assert.Equal(t, "Test conversation", out.Conversation.Title)

	reply, err := svc.SendMessage(ctx, conversation.SendMessageInput{
		ConversationID: out.Conversation.ID,
		UserID:         out.Conversation.UserID,
		Text:           "Hello there",
	})
	require.NoError(t, err)

	require.NotNil(t, reply.AssistantMessage)
	assert.NotEmpty(t, reply.AssistantMessage.Content)
	assert.Equal(t, domain.RoleAssistant, reply.AssistantMessage.Role)
	assert.Equal(t, domain.RoleUser, reply.UserMessage.Role)

	// Both turns landed in the timeline, chronological order.
	conv, msgs, err := svc.GetTimeline(ctx, out.Conversation.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.False(t, conv.UpdatedAt.Before(conv.CreatedAt))
}

func TestStartConversationDefaultsTitle(t *testing.T) {
	svc := newTestService()

	out, err := svc.StartConversation(context.Background(), conversation.StartConversationInput{
		UserID: domain.UserID("test-user"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Conversation", out.Conversation.Title)
}

func TestSendMessageToUnknownConversation(t *testing.T) {
	svc := newTestService()

	_, err := svc.SendMessage(context.Background(), conversation.SendMessageInput{
		ConversationID: domain.ConversationID("missing"),
		UserID:         domain.UserID("test-user"),
		Text:           "hello?",
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListConversations(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	userID := domain.UserID("test-user")
	first, err := svc.StartConversation(ctx, conversation.StartConversationInput{UserID: userID, Title: "first"})
	require.NoError(t, err)
	_, err = svc.StartConversation(ctx, conversation.StartConversationInput{UserID: userID, Title: "second"})
	require.NoError(t, err)

	// Touching the first conversation moves it to the front.
	_, err = svc.SendMessage(ctx, conversation.SendMessageInput{
		ConversationID: first.Conversation.ID,
		UserID:         userID,
		Text:           "bump",
	})
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "first", convs[0].Title)
}
