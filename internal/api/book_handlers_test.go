package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duneBody() map[string]any {
	return map[string]any{
		"title":           "Dune",
		"author":          "Frank Herbert",
		"series":          "Dune",
		"sequence_number": 1,
		"language":        "en",
		"isbn":            "9780441013593",
		"collection":      "UNREAD",
	}
}

func (ts *testServer) createBook(t *testing.T, authHeader string, body map[string]any) BookResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/books", authHeader, body)
	require.Equal(t, http.StatusCreated, resp.Code, "create failed: %s", resp.Body.String())

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestCreateBookEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	book := ts.createBook(t, token, duneBody())
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	require.NotNil(t, book.Series)
	assert.Equal(t, "Dune", *book.Series)
	require.NotNil(t, book.SequenceNumber)
	assert.Equal(t, 1, *book.SequenceNumber)
	assert.Equal(t, "UNREAD", book.Collection)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestCreateBookValidationError(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	body := duneBody()
	body["title"] = ""
	resp := ts.api.Post("/api/v1/books", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestCreateBookUnknownCollection(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	body := duneBody()
	body["collection"] = "BORROWED"
	resp := ts.api.Post("/api/v1/books", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetBookEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	created := ts.createBook(t, token, duneBody())

	resp := ts.api.Get("/api/v1/books/"+created.ID, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, created.ID, envelope.Data.ID)
	assert.Equal(t, "Dune", envelope.Data.Title)
}

func TestGetBookNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	resp := ts.api.Get("/api/v1/books/book-missing", token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestGetBookOwnedBySomeoneElse(t *testing.T) {
	ts := setupTestServer(t)
	aliceToken := ts.tokenFor(t, "firebase-uid-alice")
	bobToken := ts.tokenFor(t, "firebase-uid-bob")

	book := ts.createBook(t, aliceToken, duneBody())

	// Identical response shape to a missing book.
	resp := ts.api.Get("/api/v1/books/"+book.ID, bobToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListBooksEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")
	otherToken := ts.tokenFor(t, "firebase-uid-2")

	ts.createBook(t, token, duneBody())
	body := duneBody()
	body["title"] = "Dune Messiah"
	body["sequence_number"] = 2
	ts.createBook(t, token, body)
	ts.createBook(t, otherToken, duneBody())

	resp := ts.api.Get("/api/v1/books", token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Books, 2)
}

func TestListBooksEmpty(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	resp := ts.api.Get("/api/v1/books", token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data.Books)
	assert.Empty(t, envelope.Data.Books)
}

func TestUpdateBookEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	created := ts.createBook(t, token, duneBody())

	body := duneBody()
	body["title"] = "Dune Messiah"
	body["sequence_number"] = 2
	body["collection"] = "READ"
	resp := ts.api.Put("/api/v1/books/"+created.ID, token, body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, created.ID, envelope.Data.ID)
	assert.Equal(t, "Dune Messiah", envelope.Data.Title)
	assert.Equal(t, "READ", envelope.Data.Collection)
	assert.True(t, envelope.Data.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateBookNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	resp := ts.api.Put("/api/v1/books/book-missing", token, duneBody())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteBookEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.tokenFor(t, "firebase-uid-1")

	created := ts.createBook(t, token, duneBody())

	resp := ts.api.Delete("/api/v1/books/"+created.ID, token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/books/"+created.ID, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/api/v1/books/"+created.ID, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
