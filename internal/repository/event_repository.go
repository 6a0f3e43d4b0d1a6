package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/storage"
)

// KVEventRepository appends events as JSON to the analytics:events list and
// keeps counters under analytics:<kind>:<label>.
type KVEventRepository struct {
	store storage.Store
}

// NewKVEventRepository creates a KVEventRepository on the given store.
func NewKVEventRepository(store storage.Store) *KVEventRepository {
	return &KVEventRepository{store: store}
}

var _ EventRepository = (*KVEventRepository)(nil)

func (r *KVEventRepository) Append(ctx context.Context, ev *model.AnalyticsEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if _, err := r.store.LPush(ctx, keyEvents, string(b)); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (r *KVEventRepository) IncrementCounters(ctx context.Context, ev *model.AnalyticsEvent, day string) error {
	keys := []string{counterKey(CounterType, string(ev.Type))}
	if ev.Page != "" {
		keys = append(keys, counterKey(CounterPage, ev.Page))
	}
	if ev.Section != "" {
		keys = append(keys, counterKey(CounterSection, ev.Section))
	}
	if ev.Project != "" {
		keys = append(keys, counterKey(CounterProject, ev.Project))
	}
	keys = append(keys, counterKey(CounterDay, day), keyTotalEvents)

	for _, k := range keys {
		if _, err := r.store.Incr(ctx, k); err != nil {
			return fmt.Errorf("increment %s: %w", k, err)
		}
	}
	if err := r.store.Set(ctx, keyLastEventAt, ev.Timestamp); err != nil {
		return fmt.Errorf("set last event: %w", err)
	}
	return nil
}

func (r *KVEventRepository) Count(ctx context.Context, kind CounterKind, label string) (int64, error) {
	return readCounter(ctx, r.store, counterKey(kind, label))
}

func (r *KVEventRepository) TotalEvents(ctx context.Context) (int64, error) {
	return readCounter(ctx, r.store, keyTotalEvents)
}

func (r *KVEventRepository) LastEventAt(ctx context.Context) (string, error) {
	v, err := r.store.Get(ctx, keyLastEventAt)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (r *KVEventRepository) Recent(ctx context.Context, limit int) ([]*model.AnalyticsEvent, error) {
	if limit <= 0 {
		return []*model.AnalyticsEvent{}, nil
	}
	items, err := r.store.LRange(ctx, keyEvents, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]*model.AnalyticsEvent, 0, len(items))
	for _, item := range items {
		var ev model.AnalyticsEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		events = append(events, &ev)
	}
	return events, nil
}
