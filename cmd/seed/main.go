// Package main provides a tool to seed the database with sample books.
//
// It provisions a handful of users with random external uids, fills their
// shelves, and prints a dev token per user for poking at the API locally.
//
// Usage:
//
//	DATA_PATH=~/QuickLib/data go run ./cmd/seed
//	DATA_PATH=~/QuickLib/data go run ./cmd/seed --users 5
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/quicklibapp/quicklib-server/internal/auth"
	"github.com/quicklibapp/quicklib-server/internal/domain"
	"github.com/quicklibapp/quicklib-server/internal/id"
	"github.com/quicklibapp/quicklib-server/internal/store/sqlite"
)

var userCount = flag.Int("users", 2, "Number of users to create")

type sampleBook struct {
	title    string
	author   string
	series   string
	sequence int
	language string
	isbn     string
}

var samples = []sampleBook{
	{"Dune", "Frank Herbert", "Dune", 1, "en", "9780441013593"},
	{"Dune Messiah", "Frank Herbert", "Dune", 2, "en", "9780593098233"},
	{"Children of Dune", "Frank Herbert", "Dune", 3, "en", "9780593098240"},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", "Earthsea", 1, "en", "9780547773742"},
	{"The Tombs of Atuan", "Ursula K. Le Guin", "Earthsea", 2, "en", "9780689845369"},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "", 0, "en", "9780441478125"},
	{"Solaris", "Stanisław Lem", "", 0, "pl", "9788308067659"},
	{"Der Prozess", "Franz Kafka", "", 0, "de", "9783150096765"},
	{"Cien años de soledad", "Gabriel García Márquez", "", 0, "es", "9780307474728"},
	{"La Peste", "Albert Camus", "", 0, "fr", "9782070360420"},
}

var collections = []domain.Collection{
	domain.CollectionRead,
	domain.CollectionUnread,
	domain.CollectionWishlist,
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/QuickLib/data")
	}

	fmt.Printf("Opening database under: %s\n", dataPath)

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(dataPath, "quicklib.db"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	// Reuse the server's dev keypair so issued tokens verify.
	secretHex, _, err := auth.LoadOrGenerateKeypair(dataPath)
	if err != nil {
		log.Fatalf("Failed to load dev keypair: %v", err)
	}
	issuer, err := auth.NewIssuer(secretHex, "quicklib-identity", "quicklib-server", 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for u := 0; u < *userCount; u++ {
		externalUID := uuid.NewString()
		user := &domain.User{
			ID:          id.MustGenerate("usr"),
			ExternalUID: externalUID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}

		shelfSize := 3 + rng.Intn(len(samples)-3)
		for _, sample := range rng.Perm(len(samples))[:shelfSize] {
			if err := s.CreateBook(ctx, bookFor(user, samples[sample], rng)); err != nil {
				log.Fatalf("Failed to create book: %v", err)
			}
		}

		token, err := issuer.IssueToken(externalUID)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}

		fmt.Printf("\nUser %s (%d books)\n", user.ID, shelfSize)
		fmt.Printf("  external uid: %s\n", externalUID)
		fmt.Printf("  token:        %s\n", token)
	}

	fmt.Println("\nDone.")
}

func bookFor(user *domain.User, sample sampleBook, rng *rand.Rand) *domain.Book {
	book := &domain.Book{
		ID:         id.MustGenerate("book"),
		UserID:     user.ID,
		Title:      sample.title,
		Author:     sample.author,
		Language:   sample.language,
		Collection: collections[rng.Intn(len(collections))],
		CreatedAt:  time.Now().UTC(),
	}
	if sample.series != "" {
		series := sample.series
		sequence := sample.sequence
		book.Series = &series
		book.SequenceNumber = &sequence
	}
	if sample.isbn != "" {
		isbn := sample.isbn
		book.ISBN = &isbn
	}
	return book
}
