package storage

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendNone     = "none"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendBolt     = "bolt"
)

// Options carries the connection settings for every backend; only the fields
// of the selected backend are read.
type Options struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	SQLiteURL   string
	BoltPath    string
}

// Open creates the Store selected by opts.Backend. The backend must be named
// explicitly; memory is a dev and test mode, never a fallback.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendNone:
		return NullStore{}, nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL)
	case BackendPostgres:
		return NewPostgresStore(ctx, opts.DatabaseURL)
	case BackendSQLite:
		return NewSQLiteStore(ctx, opts.SQLiteURL)
	case BackendBolt:
		return NewBoltStore(opts.BoltPath)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
