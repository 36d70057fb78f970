// Package store defines the persistence interface for the QuickLib server.
package store

import (
	"context"

	"github.com/quicklibapp/quicklib-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Ownership scoping is part of the contract: every book read or write takes
// the owning user's id and touches only rows whose user_id matches. A book
// that exists but belongs to someone else is indistinguishable from one that
// does not exist.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByExternalUID(ctx context.Context, externalUID string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBookForUser(ctx context.Context, userID, bookID string) (*domain.Book, error)
	ListBooksForUser(ctx context.Context, userID string) ([]*domain.Book, error)
	UpdateBookForUser(ctx context.Context, book *domain.Book) error
	DeleteBookForUser(ctx context.Context, userID, bookID string) (bool, error)
}
