package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("storage: key not found")

// Store abstracts the external key-value service holding contact records and
// analytics counters. Implementations exist for Redis, PostgreSQL, SQLite,
// bbolt and process memory, plus a null store that discards writes.
//
// Incr must be atomic at the store level: callers never read-modify-write
// counters themselves.
type Store interface {
	// Get returns the string value at key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a string value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// HSet writes the given fields into the hash at key.
	HSet(ctx context.Context, key string, fields map[string]string) error

	// HGetAll returns every field of the hash at key. A missing hash yields an
	// empty, non-nil map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// Incr atomically adds one to the integer at key (missing keys start at 0)
	// and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// LPush prepends value to the list at key and returns the new length.
	LPush(ctx context.Context, key, value string) (int64, error)

	// LRange returns elements start..stop (inclusive) of the list at key,
	// head first. Negative indices count from the tail, -1 being the last.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

// rangeBounds resolves Redis-style inclusive list indices against a list of
// length n. ok is false when the range selects nothing.
func rangeBounds(start, stop, n int64) (from, to int64, ok bool) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
