package storage

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
)

func TestBoltStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewBoltStore(filepath.Join(t.TempDir(), "kv.db"))
		if err != nil {
			t.Fatalf("NewBoltStore: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	if _, err := s.LPush(ctx, "l", "first"); err != nil {
		t.Fatalf("LPush: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = NewBoltStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	n, err := s.LPush(ctx, "l", "second")
	if err != nil {
		t.Fatalf("LPush: %v", err)
	}
	if n != 2 {
		t.Errorf("expected length 2 after reopen, got %d", n)
	}
	got, err := s.LRange(ctx, "l", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	if len(got) != 2 || got[0] != "second" || got[1] != "first" {
		t.Errorf("expected [second first], got %v", got)
	}
}

func TestBoltStore_LengthTracksPushes(t *testing.T) {
	ctx := context.Background()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	defer s.Close()

	const pushes = 300
	for i := 1; i <= pushes; i++ {
		n, err := s.LPush(ctx, "events", strconv.Itoa(i))
		if err != nil {
			t.Fatalf("LPush: %v", err)
		}
		if n != int64(i) {
			t.Fatalf("push %d: expected length %d, got %d", i, i, n)
		}
	}

	got, err := s.LRange(ctx, "events", -2, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	if len(got) != 2 || got[0] != "2" || got[1] != "1" {
		t.Errorf("expected the two oldest entries [2 1], got %v", got)
	}
}
