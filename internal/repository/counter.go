package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/portfolio/backend/internal/storage"
)

// readCounter returns the integer at key, zero when it was never incremented.
func readCounter(ctx context.Context, store storage.Store, key string) (int64, error) {
	v, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %q: %w", key, err)
	}
	return n, nil
}
