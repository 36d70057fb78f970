package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/quicklibapp/quicklib-server/internal/domain"
	"github.com/quicklibapp/quicklib-server/internal/errors"
	"github.com/quicklibapp/quicklib-server/internal/id"
	"github.com/quicklibapp/quicklib-server/internal/store"
	"github.com/quicklibapp/quicklib-server/internal/validation"
)

// BookService owns the book catalog. Every operation takes the acting
// user and only ever touches rows that user owns; a book belonging to
// someone else is reported identically to one that does not exist.
type BookService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, validator *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// BookInput carries the caller-supplied fields for creating or fully
// replacing a book. Identity and ownership fields are never accepted
// from the caller.
type BookInput struct {
	Title          string  `json:"title" validate:"required,max=500"`
	Author         string  `json:"author" validate:"required,max=500"`
	Series         *string `json:"series,omitempty" validate:"omitempty,max=500"`
	SequenceNumber *int    `json:"sequence_number,omitempty" validate:"omitempty,gte=1"`
	Language       string  `json:"language" validate:"required,bcp47_language_tag"`
	ISBN           *string `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Collection     string  `json:"collection" validate:"required,oneof=READ UNREAD WISHLIST"`
}

// List returns every book the user owns, newest first.
func (s *BookService) List(ctx context.Context, user *domain.User) ([]*domain.Book, error) {
	books, err := s.store.ListBooksForUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list books")
	}
	return books, nil
}

// Get returns a single book owned by the user.
func (s *BookService) Get(ctx context.Context, user *domain.User, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBookForUser(ctx, user.ID, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFound("book not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to get book")
	}
	return book, nil
}

// Create validates the input and persists a new book owned by the user.
func (s *BookService) Create(ctx context.Context, user *domain.User, input *BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:             id.MustGenerate("book"),
		UserID:         user.ID,
		Title:          input.Title,
		Author:         input.Author,
		Series:         input.Series,
		SequenceNumber: input.SequenceNumber,
		Language:       input.Language,
		ISBN:           input.ISBN,
		Collection:     domain.Collection(input.Collection),
		CreatedAt:      time.Now().UTC(),
	}
	book.Normalize()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create book")
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"user_id", user.ID,
	)
	return book, nil
}

// Update fully replaces the mutable fields of a book the user owns.
// The book's id, owner, and creation time are preserved.
func (s *BookService) Update(ctx context.Context, user *domain.User, bookID string, input *BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:             bookID,
		UserID:         user.ID,
		Title:          input.Title,
		Author:         input.Author,
		Series:         input.Series,
		SequenceNumber: input.SequenceNumber,
		Language:       input.Language,
		ISBN:           input.ISBN,
		Collection:     domain.Collection(input.Collection),
	}
	book.Normalize()

	err := s.store.UpdateBookForUser(ctx, book)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFound("book not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to update book")
	}

	// Re-read for the stored creation time. A concurrent delete can
	// land between the write and this read; that's still a 404.
	updated, err := s.store.GetBookForUser(ctx, user.ID, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFound("book not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to reload book")
	}

	s.logger.Info("book updated",
		"book_id", bookID,
		"user_id", user.ID,
	)
	return updated, nil
}

// Delete removes a book the user owns.
func (s *BookService) Delete(ctx context.Context, user *domain.User, bookID string) error {
	deleted, err := s.store.DeleteBookForUser(ctx, user.ID, bookID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete book")
	}
	if !deleted {
		return errors.NotFound("book not found")
	}

	s.logger.Info("book deleted",
		"book_id", bookID,
		"user_id", user.ID,
	)
	return nil
}
