// Package client provides a typed Go client for the QuickLib API.
//
// The client speaks the versioned response envelope and transparently
// retries requests that die at a proxy with 502 Bad Gateway, which is
// how serverless-hosted deployments surface cold starts.
package client

import (
	"bytes"
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
	defaultTimeout    = 30 * time.Second
)

// Client is a QuickLib API client scoped to one bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries configures how many times a 502 response is retried and
// the starting delay between attempts. The delay doubles per attempt.
func WithRetries(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelay = baseDelay
	}
}

// New creates a client for the given base URL and identity token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is an error response decoded from the envelope.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// IsNotFound reports whether the error is a 404 API response.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// envelope mirrors the server's versioned response wrapper.
type envelope struct {
	V       int             `json:"v"`
	Success bool            `json:"success"`
	Data    jsontext.Value  `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details any             `json:"details"`
}

// do runs one request with bounded retries on 502 and returns the
// decoded data payload. A nil out skips decoding.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// 1s, 2s, 4s... between attempts.
			delay := c.retryDelay * (1 << (attempt - 1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		retry, err := c.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	return lastErr
}

// doOnce performs a single HTTP exchange. The bool result reports
// whether the failure is retryable.
func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out any) (bool, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadGateway {
		return true, &APIError{
			Status:  resp.StatusCode,
			Message: "bad gateway",
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Code:    env.Code,
			Message: env.Message,
			Details: env.Details,
		}
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
		return false, apiErr
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return false, fmt.Errorf("decode data: %w", err)
		}
	}
	return false, nil
}

// Book is a catalog entry as returned by the API.
type Book struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Series         *string   `json:"series,omitempty"`
	SequenceNumber *int      `json:"sequence_number,omitempty"`
	Language       string    `json:"language"`
	ISBN           *string   `json:"isbn,omitempty"`
	Collection     string    `json:"collection"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookInput carries the writable fields for creating or replacing a book.
type BookInput struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Series         *string `json:"series,omitempty"`
	SequenceNumber *int    `json:"sequence_number,omitempty"`
	Language       string  `json:"language"`
	ISBN           *string `json:"isbn,omitempty"`
	Collection     string  `json:"collection"`
}

// User is the current account as returned by the API.
type User struct {
	ID          string    `json:"id"`
	ExternalUID string    `json:"external_uid"`
	CreatedAt   time.Time `json:"created_at"`
}

type bookList struct {
	Books []Book `json:"books"`
}

// ListBooks returns all books on the current user's shelves, newest first.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var list bookList
	if err := c.do(ctx, http.MethodGet, "/api/v1/books", nil, &list); err != nil {
		return nil, err
	}
	return list.Books, nil
}

// GetBook returns a single book by ID.
func (c *Client) GetBook(ctx context.Context, bookID string) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, "/api/v1/books/"+bookID, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a book to the current user's catalog.
func (c *Client) CreateBook(ctx context.Context, input BookInput) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPost, "/api/v1/books", input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook fully replaces the mutable fields of a book.
func (c *Client) UpdateBook(ctx context.Context, bookID string, input BookInput) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPut, "/api/v1/books/"+bookID, input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book from the current user's catalog.
func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/books/"+bookID, nil, nil)
}

// CurrentUser returns the current user, provisioning them on first contact.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteCurrentUser deletes the current user and every book they own.
func (c *Client) DeleteCurrentUser(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/user", nil, nil)
}
