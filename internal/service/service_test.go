package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quicklibapp/quicklib-server/internal/store"
	"github.com/quicklibapp/quicklib-server/internal/store/sqlite"
	"github.com/quicklibapp/quicklib-server/internal/validation"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "quicklib.db")
	s, err := sqlite.Open(dbPath, discardLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServices(t *testing.T) (*IdentityService, *BookService) {
	t.Helper()

	st := newTestStore(t)
	logger := discardLogger()
	return NewIdentityService(st, logger),
		NewBookService(st, validation.New(), logger)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
