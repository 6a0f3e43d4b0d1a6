package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso / libsql driver
	_ "modernc.org/sqlite"                               // local SQLite driver
)

const sqliteSchema = `
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
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	key   TEXT NOT NULL,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS kv_lists_key_id ON kv_lists (key, id DESC);
`

var sqliteDropSchema = []string{
	`DROP TABLE IF EXISTS kv_strings`,
	`DROP TABLE IF EXISTS kv_hashes`,
	`DROP TABLE IF EXISTS kv_lists`,
}

// SQLiteStore emulates the key-value primitives on SQLite. Remote libsql://
// (Turso) URLs are opened with the libsql driver, anything else with the
// embedded modernc driver.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens dbURL and ensures the kv_* tables exist.
func NewSQLiteStore(ctx context.Context, dbURL string) (*SQLiteStore, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	if driverName == "sqlite" {
		// One writer at a time avoids SQLITE_BUSY and keeps :memory: databases
		// on a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping sqlite: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

var _ Store = (*SQLiteStore)(nil)

// EnsureSchema creates the kv_* tables if they are missing.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("storage: sqlite schema: %w", err)
	}
	return nil
}

// DropSchema removes the kv_* tables and all data in them.
func (s *SQLiteStore) DropSchema(ctx context.Context) error {
	for _, stmt := range sqliteDropSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("storage: sqlite drop: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_strings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: sqlite get: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_strings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: sqlite set: %w", err)
	}
	return nil
}

func (s *SQLiteStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: sqlite hset: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for f, v := range fields {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv_hashes (key, field, value) VALUES (?, ?, ?)
			 ON CONFLICT (key, field) DO UPDATE SET value = excluded.value`,
			key, f, v,
		)
		if err != nil {
			return fmt.Errorf("storage: sqlite hset: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: sqlite hset: %w", err)
	}
	return nil
}

func (s *SQLiteStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, value FROM kv_hashes WHERE key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("storage: sqlite hgetall: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var f, v string
		if err := rows.Scan(&f, &v); err != nil {
			return nil, fmt.Errorf("storage: sqlite hgetall: %w", err)
		}
		out[f] = v
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Incr(ctx context.Context, key string) (int64, error) {
	// The conflict update only applies to canonical integers; anything else
	// leaves the row alone and RETURNING yields no row.
	var n int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO kv_strings (key, value) VALUES (?, '1')
		 ON CONFLICT (key) DO UPDATE SET value = CAST(kv_strings.value AS INTEGER) + 1
		 WHERE CAST(CAST(kv_strings.value AS INTEGER) AS TEXT) = kv_strings.value
		 RETURNING CAST(value AS INTEGER)`,
		key,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: sqlite incr %q: value is not an integer", key)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: sqlite incr: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) LPush(ctx context.Context, key, value string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: sqlite lpush: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `INSERT INTO kv_lists (key, value) VALUES (?, ?)`, key, value); err != nil {
		return 0, fmt.Errorf("storage: sqlite lpush: %w", err)
	}
	var n int64
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM kv_lists WHERE key = ?`, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: sqlite lpush: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: sqlite lpush: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM kv_lists WHERE key = ?`, key).Scan(&n); err != nil {
		return nil, fmt.Errorf("storage: sqlite lrange: %w", err)
	}
	from, to, ok := rangeBounds(start, stop, n)
	if !ok {
		return []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM kv_lists WHERE key = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		key, to-from+1, from,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: sqlite lrange: %w", err)
	}
	defer rows.Close()

	items := make([]string, 0, to-from+1)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: sqlite lrange: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
