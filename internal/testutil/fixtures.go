// Package testutil provides shared helpers for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/HerbHall/schooldesk/internal/store"
)

// NewStore opens a SQLite database in a per-test temp directory and closes
// it when the test ends.
func NewStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), uuid.NewString()+".db")
	s, err := store.New(path)
	if err != nil {
		t.Fatalf("store.New(%q): %v", path, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
