package storage

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_IncrNonInteger(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "k", "abc")
	if _, err := s.Incr(ctx, "k"); err == nil {
		t.Error("expected error incrementing a non-integer value")
	}
}

func TestMemoryStore_HGetAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.HSet(ctx, "h", map[string]string{"a": "1"})

	got, _ := s.HGetAll(ctx, "h")
	got["a"] = "changed"

	again, _ := s.HGetAll(ctx, "h")
	if again["a"] != "1" {
		t.Errorf("mutating the returned map changed the store: %q", again["a"])
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NullStore{}

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after Set on NullStore, got %v", err)
	}
	if n, _ := s.Incr(ctx, "c"); n != 1 {
		t.Errorf("expected Incr to report 1, got %d", n)
	}
	items, err := s.LRange(ctx, "l", 0, -1)
	if err != nil || len(items) != 0 {
		t.Errorf("expected empty list, got %v, %v", items, err)
	}
}

func TestRangeBounds(t *testing.T) {
	tests := []struct {
		start, stop, n int64
		from, to       int64
		ok             bool
	}{
		{0, -1, 3, 0, 2, true},
		{0, 9, 3, 0, 2, true},
		{-5, 1, 3, 0, 1, true},
		{3, 5, 3, 0, 0, false},
		{0, -1, 0, 0, 0, false},
		{2, 1, 5, 0, 0, false},
	}
	for _, tt := range tests {
		from, to, ok := rangeBounds(tt.start, tt.stop, tt.n)
		if ok != tt.ok || (ok && (from != tt.from || to != tt.to)) {
			t.Errorf("rangeBounds(%d, %d, %d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.start, tt.stop, tt.n, from, to, ok, tt.from, tt.to, tt.ok)
		}
	}
}
