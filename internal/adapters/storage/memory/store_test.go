package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojeda-dev/ayun-chat/internal/adapters/storage/memory"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

func conv(id, user string, updated time.Time) *domain.Conversation {
	return &domain.Conversation{
		ID:        domain.ConversationID(id),
		UserID:    domain.UserID(user),
		Title:     id,
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestConversationStoreCreateAndGet(t *testing.T) {
	s := memory.NewConversationStore()
	now := time.Now()

	require.NoError(t, s.CreateConversation(conv("c1", "u1", now)))

	got, err := s.GetConversation("c1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u1"), got.UserID)

	err = s.CreateConversation(conv("c1", "u1", now))
	require.Error(t, err, "duplicate id must be rejected")
}

func TestConversationStoreGetMissing(t *testing.T) {
	s := memory.NewConversationStore()

	_, err := s.GetConversation("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = s.UpdateConversation(conv("missing", "u1", time.Now()))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStoreListNewestFirst(t *testing.T) {
	s := memory.NewConversationStore()
	base := time.Now()

	require.NoError(t, s.CreateConversation(conv("old", "u1", base.Add(-2*time.Hour))))
	require.NoError(t, s.CreateConversation(conv("new", "u1", base)))
	require.NoError(t, s.CreateConversation(conv("mid", "u1", base.Add(-time.Hour))))
	require.NoError(t, s.CreateConversation(conv("other", "u2", base)))

	out, err := s.ListConversationsByUser("u1", 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, domain.ConversationID("new"), out[0].ID)
	assert.Equal(t, domain.ConversationID("mid"), out[1].ID)
	assert.Equal(t, domain.ConversationID("old"), out[2].ID)

	limited, err := s.ListConversationsByUser("u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMessageStoreLastNWindow(t *testing.T) {
	s := memory.NewMessageStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendMessage(&domain.Message{
			ID:             domain.MessageID(rune('a' + i)),
			ConversationID: "c1",
			Role:           domain.RoleUser,
			Content:        string(rune('a' + i)),
		}))
	}

	all, err := s.GetMessagesByConversation("c1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	window, err := s.GetMessagesByConversation("c1", 2)
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "d", window[0].Content)
	assert.Equal(t, "e", window[1].Content)
}

func TestProfileStoreRoundTrip(t *testing.T) {
	s := memory.NewProfileStore()

	_, err := s.GetProfile("u1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.PutProfile(&domain.UserProfile{
		UserID: "u1",
		Name:   "Ada",
		Email:  "ada@example.com",
	}))

	p, err := s.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
}
