package repository

import (
	"context"
	"fmt"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/storage"
)

// KVContactRepository stores each submission as a hash at contact:<id>, with
// the IDs indexed newest-first in the contact:submissions list.
type KVContactRepository struct {
	store storage.Store
}

// NewKVContactRepository creates a KVContactRepository on the given store.
func NewKVContactRepository(store storage.Store) *KVContactRepository {
	return &KVContactRepository{store: store}
}

// Ensure KVContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*KVContactRepository)(nil)

func (r *KVContactRepository) Save(ctx context.Context, sub *model.ContactSubmission) error {
	err := r.store.HSet(ctx, contactKey(sub.ID), map[string]string{
		"id":        sub.ID,
		"name":      sub.Name,
		"email":     sub.Email,
		"message":   sub.Message,
		"timestamp": sub.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	if _, err := r.store.LPush(ctx, keySubmissions, sub.ID); err != nil {
		return fmt.Errorf("index contact: %w", err)
	}
	if _, err := r.store.Incr(ctx, keyTotalSubmissions); err != nil {
		return fmt.Errorf("count contact: %w", err)
	}
	return nil
}

func (r *KVContactRepository) Find(ctx context.Context, id string) (*model.ContactSubmission, error) {
	h, err := r.store.HGetAll(ctx, contactKey(id))
	if err != nil {
		return nil, err
	}
	if len(h) == 0 || h["id"] == "" {
		return nil, ErrNotFound
	}
	return &model.ContactSubmission{
		ID:        h["id"],
		Name:      h["name"],
		Email:     h["email"],
		Message:   h["message"],
		Timestamp: h["timestamp"],
	}, nil
}

func (r *KVContactRepository) Recent(ctx context.Context, limit int) ([]*model.ContactSubmission, error) {
	if limit <= 0 {
		return []*model.ContactSubmission{}, nil
	}
	ids, err := r.store.LRange(ctx, keySubmissions, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	subs := make([]*model.ContactSubmission, 0, len(ids))
	for _, id := range ids {
		sub, err := r.Find(ctx, id)
		if err != nil {
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (r *KVContactRepository) Total(ctx context.Context) (int64, error) {
	return readCounter(ctx, r.store, keyTotalSubmissions)
}
