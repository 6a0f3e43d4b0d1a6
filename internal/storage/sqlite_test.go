package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kv.sqlite")
	s, err := NewSQLiteStore(context.Background(), "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return newTestSQLiteStore(t)
	})
}

func TestSQLiteStore_DropAndRecreate(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	if _, err := s.Incr(ctx, "c"); err != nil {
		t.Fatalf("Incr: %v", err)
	}
	if err := s.DropSchema(ctx); err != nil {
		t.Fatalf("DropSchema: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if _, err := s.Get(ctx, "c"); err != ErrNotFound {
		t.Errorf("expected data to be gone after drop, got %v", err)
	}
}
