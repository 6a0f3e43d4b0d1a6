package storage

import "context"

// NullStore accepts every write and reads back nothing. It is selected with
// STORE_BACKEND=none to run the site with persistence switched off.
type NullStore struct{}

var _ Store = NullStore{}

func (NullStore) Get(context.Context, string) (string, error) { return "", ErrNotFound }

func (NullStore) Set(context.Context, string, string) error { return nil }

func (NullStore) HSet(context.Context, string, map[string]string) error { return nil }

func (NullStore) HGetAll(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

// Incr always reports 1, like a counter that was never written before.
func (NullStore) Incr(context.Context, string) (int64, error) { return 1, nil }

func (NullStore) LPush(context.Context, string, string) (int64, error) { return 1, nil }

func (NullStore) LRange(context.Context, string, int64, int64) ([]string, error) {
	return []string{}, nil
}

func (NullStore) Ping(context.Context) error { return nil }

func (NullStore) Close() error { return nil }
