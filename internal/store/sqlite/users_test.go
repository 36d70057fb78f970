package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quicklibapp/quicklib-server/internal/domain"
	"github.com/quicklibapp/quicklib-server/internal/id"
	"github.com/quicklibapp/quicklib-server/internal/store"
)

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{
		ID:          id.MustGenerate("usr"),
		ExternalUID: "firebase-uid-42",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.ExternalUID, got.ExternalUID)
}

func TestCreateUserDuplicateExternalUID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := &domain.User{
		ID:          id.MustGenerate("usr"),
		ExternalUID: "firebase-uid-42",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(ctx, u1))

	u2 := &domain.User{
		ID:          id.MustGenerate("usr"),
		ExternalUID: "firebase-uid-42",
		CreatedAt:   time.Now().UTC(),
	}
	err := s.CreateUser(ctx, u2)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "usr-does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetUserByExternalUID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)

	got, err := s.GetUserByExternalUID(ctx, u.ExternalUID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByExternalUID(ctx, "ext-unknown")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)

	deleted, err := s.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err = s.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete should report no rows")
}

func TestDeleteUserCascadesBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)
	b := newTestBook(u.ID)
	require.NoError(t, s.CreateBook(ctx, b))

	deleted, err := s.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	var count int64
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM books WHERE user_id = ?`, u.ID).Scan(&count))
	assert.Zero(t, count, "books should be removed with their owner")
}
