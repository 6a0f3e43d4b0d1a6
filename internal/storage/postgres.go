package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS kv_strings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS kv_hashes (
	key   TEXT NOT NULL,
	field TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (key, field)
);
CREATE TABLE IF NOT EXISTS kv_lists (
	id    BIGSERIAL PRIMARY KEY,
	key   TEXT NOT NULL,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS kv_lists_key_id ON kv_lists (key, id DESC);
`

const pgDropSchema = `DROP TABLE IF EXISTS kv_strings, kv_hashes, kv_lists`

// NewPool creates a PostgreSQL connection pool and checks connectivity.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// PostgresStore emulates the key-value primitives on three PostgreSQL tables.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and ensures the kv_* tables exist.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

var _ Store = (*PostgresStore)(nil)

// EnsureSchema creates the kv_* tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("storage: postgres schema: %w", err)
	}
	return nil
}

// DropSchema removes the kv_* tables and all data in them.
func (s *PostgresStore) DropSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, pgDropSchema); err != nil {
		return fmt.Errorf("storage: postgres drop: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_strings WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: postgres get: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_strings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: postgres set: %w", err)
	}
	return nil
}

func (s *PostgresStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for f, v := range fields {
		batch.Queue(
			`INSERT INTO kv_hashes (key, field, value) VALUES ($1, $2, $3)
			 ON CONFLICT (key, field) DO UPDATE SET value = EXCLUDED.value`,
			key, f, v,
		)
	}
	// SendBatch runs the queued statements in one implicit transaction.
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("storage: postgres hset: %w", err)
	}
	return nil
}

func (s *PostgresStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT field, value FROM kv_hashes WHERE key = $1`, key)
	if err != nil {
		return nil, fmt.Errorf("storage: postgres hgetall: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var f, v string
		if err := rows.Scan(&f, &v); err != nil {
			return nil, fmt.Errorf("storage: postgres hgetall: %w", err)
		}
		out[f] = v
	}
	return out, rows.Err()
}

// Incr relies on the row lock taken by the upsert, so concurrent callers
// never lose an increment.
func (s *PostgresStore) Incr(ctx context.Context, key string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO kv_strings (key, value) VALUES ($1, '1')
		 ON CONFLICT (key) DO UPDATE SET value = (kv_strings.value::bigint + 1)::text
		 RETURNING value::bigint`,
		key,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: postgres incr: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) LPush(ctx context.Context, key, value string) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("storage: postgres lpush: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO kv_lists (key, value) VALUES ($1, $2)`, key, value); err != nil {
		return 0, fmt.Errorf("storage: postgres lpush: %w", err)
	}
	var n int64
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM kv_lists WHERE key = $1`, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: postgres lpush: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("storage: postgres lpush: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM kv_lists WHERE key = $1`, key).Scan(&n); err != nil {
		return nil, fmt.Errorf("storage: postgres lrange: %w", err)
	}
	from, to, ok := rangeBounds(start, stop, n)
	if !ok {
		return []string{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT value FROM kv_lists WHERE key = $1 ORDER BY id DESC OFFSET $2 LIMIT $3`,
		key, from, to-from+1,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: postgres lrange: %w", err)
	}
	defer rows.Close()

	items := make([]string, 0, to-from+1)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: postgres lrange: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
