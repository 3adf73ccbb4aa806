package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojeda-dev/ayun-chat/internal/adapters/storage/memory"
	"github.com/ojeda-dev/ayun-chat/internal/app/profile"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

func TestGetMissingProfileReturnsEmpty(t *testing.T) {
	svc := profile.NewService(memory.NewProfileStore())

	p, err := svc.Get(context.Background(), domain.UserID("nobody"))
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("nobody"), p.UserID)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.Email)
}

func TestPutAndGetProfile(t *testing.T) {
	ctx := context.Background()
	svc := profile.NewService(memory.NewProfileStore())

	_, err := svc.Put(ctx, domain.UserID("u1"), "Ada", "ada@example.com")
	require.NoError(t, err)

	p, err := svc.Get(ctx, domain.UserID("u1"))
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
}

func TestPutRequiresUserID(t *testing.T) {
	svc := profile.NewService(memory.NewProfileStore())

	_, err := svc.Put(context.Background(), domain.UserID(""), "Ada", "ada@example.com")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
