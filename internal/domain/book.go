package domain

import (
	"strings"
	"time"
)

// Collection classifies where a book sits in the owner's library.
type Collection string

const (
	// CollectionRead marks a book the owner has finished.
	CollectionRead Collection = "READ"
	// CollectionUnread marks a book the owner has but hasn't read yet.
	CollectionUnread Collection = "UNREAD"
	// CollectionWishlist marks a book the owner wants but doesn't have.
	CollectionWishlist Collection = "WISHLIST"
)

// IsValid reports whether c is one of the three known collection states.
// Any other value is rejected at the boundary, never defaulted.
func (c Collection) IsValid() bool {
	switch c {
	case CollectionRead, CollectionUnread, CollectionWishlist:
		return true
	}
	return false
}

// Book is a single record in a user's personal library.
// Exactly one user owns a book; the owner is set at creation from the
// authenticated principal and is never client-supplied.
type Book struct {
	ID             string     `json:"id"`
	UserID         string     `json:"-"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	Series         *string    `json:"series"`
	SequenceNumber *int       `json:"sequence_number"`
	Language       string     `json:"language"`
	ISBN           *string    `json:"isbn"`
	Collection     Collection `json:"collection"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Normalize converts empty-string optional fields to absent and clears a
// sequence number that has no series to belong to.
func (b *Book) Normalize() {
	if b.Series != nil && strings.TrimSpace(*b.Series) == "" {
		b.Series = nil
	}
	if b.ISBN != nil && strings.TrimSpace(*b.ISBN) == "" {
		b.ISBN = nil
	}
	if b.Series == nil {
		b.SequenceNumber = nil
	}
}
