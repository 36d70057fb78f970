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

func TestCreateAndGetBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)

	series := "Dune"
	seq := 1
	isbn := "9780441013593"
	b := &domain.Book{
		ID:             id.MustGenerate("book"),
		UserID:         u.ID,
		Title:          "Dune",
		Author:         "Frank Herbert",
		Series:         &series,
		SequenceNumber: &seq,
		Language:       "en",
		ISBN:           &isbn,
		Collection:     domain.CollectionUnread,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.CreateBook(ctx, b))

	got, err := s.GetBookForUser(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	require.NotNil(t, got.Series)
	assert.Equal(t, "Dune", *got.Series)
	require.NotNil(t, got.SequenceNumber)
	assert.Equal(t, 1, *got.SequenceNumber)
	require.NotNil(t, got.ISBN)
	assert.Equal(t, "9780441013593", *got.ISBN)
	assert.Equal(t, domain.CollectionUnread, got.Collection)
}

func TestCreateBookNullableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)
	b := newTestBook(u.ID)
	require.NoError(t, s.CreateBook(ctx, b))

	got, err := s.GetBookForUser(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Series)
	assert.Nil(t, got.SequenceNumber)
	assert.Nil(t, got.ISBN)
}

func TestGetBookForUserScopesOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s)
	other := newTestUser(t, s)

	b := newTestBook(owner.ID)
	require.NoError(t, s.CreateBook(ctx, b))

	_, err := s.GetBookForUser(ctx, other.ID, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound,
		"another user's book must look like it does not exist")

	got, err := s.GetBookForUser(ctx, owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestListBooksForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)
	other := newTestUser(t, s)

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		b := newTestBook(u.ID)
		b.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.CreateBook(ctx, b))
	}
	require.NoError(t, s.CreateBook(ctx, newTestBook(other.ID)))

	books, err := s.ListBooksForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, books, 3)

	for i := 1; i < len(books); i++ {
		assert.False(t, books[i-1].CreatedAt.Before(books[i].CreatedAt),
			"list must be ordered newest first")
	}
	for _, b := range books {
		assert.Equal(t, u.ID, b.UserID)
	}
}

func TestListBooksForUserEmpty(t *testing.T) {
	s := newTestStore(t)

	u := newTestUser(t, s)
	books, err := s.ListBooksForUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestUpdateBookForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s)
	b := newTestBook(u.ID)
	require.NoError(t, s.CreateBook(ctx, b))

	series := "Earthsea"
	seq := 2
	b.Title = "The Tombs of Atuan"
	b.Series = &series
	b.SequenceNumber = &seq
	b.Collection = domain.CollectionWishlist
	require.NoError(t, s.UpdateBookForUser(ctx, b))

	got, err := s.GetBookForUser(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Tombs of Atuan", got.Title)
	require.NotNil(t, got.Series)
	assert.Equal(t, "Earthsea", *got.Series)
	require.NotNil(t, got.SequenceNumber)
	assert.Equal(t, 2, *got.SequenceNumber)
	assert.Equal(t, domain.CollectionWishlist, got.Collection)
}

func TestUpdateBookForUserWrongOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s)
	other := newTestUser(t, s)

	b := newTestBook(owner.ID)
	require.NoError(t, s.CreateBook(ctx, b))

	hijack := *b
	hijack.UserID = other.ID
	hijack.Title = "Stolen"
	err := s.UpdateBookForUser(ctx, &hijack)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.GetBookForUser(ctx, owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title, "owner's book must be untouched")
}

func TestUpdateBookForUserMissing(t *testing.T) {
	s := newTestStore(t)

	u := newTestUser(t, s)
	b := newTestBook(u.ID)
	// never inserted
	err := s.UpdateBookForUser(context.Background(), b)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteBookForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s)
	other := newTestUser(t, s)

	b := newTestBook(owner.ID)
	require.NoError(t, s.CreateBook(ctx, b))

	deleted, err := s.DeleteBookForUser(ctx, other.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "delete by a non-owner must not match")

	deleted, err = s.DeleteBookForUser(ctx, owner.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetBookForUser(ctx, owner.ID, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
