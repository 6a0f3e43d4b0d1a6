package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	boltStrings = []byte("strings")
	boltHashes  = []byte("hashes") // one nested bucket per hash key
	boltLists   = []byte("lists")  // one nested bucket per list key, entries keyed by sequence

	// Lists are append-only, so a list bucket's sequence is its length.
)

// BoltStore keeps the key-value data in a single bbolt file. bbolt allows one
// read-write transaction at a time, which makes Incr atomic.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the bolt file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{boltStrings, boltHashes, boltLists} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init bolt: %w", err)
	}
	return &BoltStore{db: db}, nil
}

var _ Store = (*BoltStore)(nil)

func (s *BoltStore) Get(_ context.Context, key string) (string, error) {
	var v []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(boltStrings).Get([]byte(key)); b != nil {
			v = append([]byte(nil), b...)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("storage: bolt get: %w", err)
	}
	if v == nil {
		return "", ErrNotFound
	}
	return string(v), nil
}

func (s *BoltStore) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltStrings).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("storage: bolt set: %w", err)
	}
	return nil
}

func (s *BoltStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		h, err := tx.Bucket(boltHashes).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		for f, v := range fields {
			if err := h.Put([]byte(f), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: bolt hset: %w", err)
	}
	return nil
}

func (s *BoltStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		h := tx.Bucket(boltHashes).Bucket([]byte(key))
		if h == nil {
			return nil
		}
		return h.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: bolt hgetall: %w", err)
	}
	return out, nil
}

func (s *BoltStore) Incr(_ context.Context, key string) (int64, error) {
	var n int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltStrings)
		if cur := b.Get([]byte(key)); cur != nil {
			parsed, err := strconv.ParseInt(string(cur), 10, 64)
			if err != nil {
				return fmt.Errorf("value at %q is not an integer", key)
			}
			n = parsed
		}
		n++
		return b.Put([]byte(key), []byte(strconv.FormatInt(n, 10)))
	})
	if err != nil {
		return 0, fmt.Errorf("storage: bolt incr: %w", err)
	}
	return n, nil
}

func (s *BoltStore) LPush(_ context.Context, key, value string) (int64, error) {
	var n int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		l, err := tx.Bucket(boltLists).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		seq, err := l.NextSequence()
		if err != nil {
			return err
		}
		if err := l.Put(itob(seq), []byte(value)); err != nil {
			return err
		}
		n = int64(seq)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("storage: bolt lpush: %w", err)
	}
	return n, nil
}

// LRange walks the list bucket from its highest sequence down, so the most
// recently pushed value is index 0.
func (s *BoltStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	items := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		l := tx.Bucket(boltLists).Bucket([]byte(key))
		if l == nil {
			return nil
		}
		from, to, ok := rangeBounds(start, stop, int64(l.Sequence()))
		if !ok {
			return nil
		}
		c := l.Cursor()
		var i int64
		for k, v := c.Last(); k != nil && i <= to; k, v = c.Prev() {
			if i >= from {
				items = append(items, string(v))
			}
			i++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: bolt lrange: %w", err)
	}
	return items, nil
}

func (s *BoltStore) Ping(context.Context) error {
	return s.db.View(func(*bolt.Tx) error { return nil })
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
