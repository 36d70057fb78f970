package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/quicklibapp/quicklib-server/internal/domain"
	"github.com/quicklibapp/quicklib-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, user_id, title, author, series, sequence_number, language, isbn, collection, created_at`

func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b          domain.Book
		series     sql.NullString
		sequence   sql.NullInt64
		isbn       sql.NullString
		collection string
		createdAt  string
	)

	if err := scanner.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Author,
		&series,
		&sequence,
		&b.Language,
		&isbn,
		&collection,
		&createdAt,
	); err != nil {
		return nil, err
	}

	b.Series = stringPtr(series)
	b.SequenceNumber = intPtr(sequence)
	b.ISBN = stringPtr(isbn)
	b.Collection = domain.Collection(collection)

	var err error
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book owned by book.UserID.
// Returns store.ErrAlreadyExists on an id collision.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, user_id, title, author, series, sequence_number, language, isbn, collection, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.UserID,
		book.Title,
		book.Author,
		nullableString(book.Series),
		nullableInt(book.SequenceNumber),
		book.Language,
		nullableString(book.ISBN),
		string(book.Collection),
		formatTime(book.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBookForUser retrieves a book by id, scoped to its owner.
// Returns store.ErrNotFound when the book does not exist or belongs to
// a different user. The two cases are indistinguishable to callers.
func (s *Store) GetBookForUser(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ? AND user_id = ?`,
		bookID, userID)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooksForUser returns all books owned by the user, newest first.
func (s *Store) ListBooksForUser(ctx context.Context, userID string) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]*domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBookForUser rewrites the mutable fields of a book, scoped to its
// owner in a single statement. Returns store.ErrNotFound when no row
// matched, which covers both a missing book and one owned by someone else.
func (s *Store) UpdateBookForUser(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, author = ?, series = ?, sequence_number = ?, language = ?, isbn = ?, collection = ?
		WHERE id = ? AND user_id = ?`,
		book.Title,
		book.Author,
		nullableString(book.Series),
		nullableInt(book.SequenceNumber),
		book.Language,
		nullableString(book.ISBN),
		string(book.Collection),
		book.ID,
		book.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteBookForUser deletes a book by id, scoped to its owner.
// Returns whether a row was deleted.
func (s *Store) DeleteBookForUser(ctx context.Context, userID, bookID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = ? AND user_id = ?`, bookID, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
