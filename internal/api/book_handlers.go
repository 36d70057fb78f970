package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quicklibapp/quicklib-server/internal/domain"
	"github.com/quicklibapp/quicklib-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns all books owned by the current user, newest first",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		Description:   "Adds a book to the current user's catalog",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID if the current user owns it",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Fully replaces the mutable fields of a book the current user owns",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete book",
		Description:   "Deletes a book the current user owns",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookRequest is the request body for creating or replacing a book.
type BookRequest struct {
	Title          string  `json:"title" doc:"Book title"`
	Author         string  `json:"author" doc:"Primary author"`
	Series         *string `json:"series,omitempty" doc:"Series name, if the book belongs to one"`
	SequenceNumber *int    `json:"sequence_number,omitempty" doc:"Position within the series"`
	Language       string  `json:"language" doc:"BCP 47 language tag, e.g. en or pt-BR"`
	ISBN           *string `json:"isbn,omitempty" doc:"ISBN-10 or ISBN-13"`
	Collection     string  `json:"collection" doc:"Shelf the book sits on, one of READ, UNREAD, WISHLIST"`
}

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID             string    `json:"id" doc:"Book ID"`
	Title          string    `json:"title" doc:"Book title"`
	Author         string    `json:"author" doc:"Primary author"`
	Series         *string   `json:"series,omitempty" doc:"Series name"`
	SequenceNumber *int      `json:"sequence_number,omitempty" doc:"Position within the series"`
	Language       string    `json:"language" doc:"BCP 47 language tag"`
	ISBN           *string   `json:"isbn,omitempty" doc:"ISBN"`
	Collection     string    `json:"collection" doc:"Shelf the book sits on"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
}

// ListBooksInput contains parameters for listing books.
type ListBooksInput struct {
	Authorization string `header:"Authorization"`
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Books owned by the current user"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Authorization string `header:"Authorization"`
	Body          BookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          BookRequest
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
}

// DeleteBookOutput is the empty 204 response.
type DeleteBookOutput struct{}

func toBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Series:         b.Series,
		SequenceNumber: b.SequenceNumber,
		Language:       b.Language,
		ISBN:           b.ISBN,
		Collection:     string(b.Collection),
		CreatedAt:      b.CreatedAt,
	}
}

func toBookInput(r BookRequest) *service.BookInput {
	return &service.BookInput{
		Title:          r.Title,
		Author:         r.Author,
		Series:         r.Series,
		SequenceNumber: r.SequenceNumber,
		Language:       r.Language,
		ISBN:           r.ISBN,
		Collection:     r.Collection,
	}
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Book.List(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = toBookResponse(b)
	}
	return &ListBooksOutput{Body: ListBooksResponse{Books: resp}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.Create(ctx, user, toBookInput(input.Body))
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.Get(ctx, user, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.Update(ctx, user, input.ID, toBookInput(input.Body))
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*DeleteBookOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Book.Delete(ctx, user, input.ID); err != nil {
		return nil, err
	}
	return &DeleteBookOutput{}, nil
}
