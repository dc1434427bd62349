package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/id"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	createTestUser(t, s, "cook@example.com")

	dup := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        "Cook@Example.COM",
		PasswordHash: "not-a-real-hash",
	}
	dup.InitTimestamps()
	err := s.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetUserByEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	u := createTestUser(t, s, "cook@example.com")

	got, err := s.GetUserByEmail(context.Background(), "COOK@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	// Original casing is preserved.
	assert.Equal(t, "cook@example.com", got.Email)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "usr-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	u.Name = "New Name"
	u.Email = "newcook@example.com"
	u.Touch()
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "newcook@example.com", got.Email)
}

func TestUpdateUserEmailCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "first@example.com")
	second := createTestUser(t, s, "second@example.com")

	second.Email = "First@Example.com"
	second.Touch()
	err := s.UpdateUser(ctx, second)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
