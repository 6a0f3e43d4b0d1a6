package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB checks that the backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists contact submissions.
type ContactRepository interface {
	// Save writes the record, appends its ID to the submissions index and
	// bumps the total-submissions counter.
	Save(ctx context.Context, sub *model.ContactSubmission) error
	Find(ctx context.Context, id string) (*model.ContactSubmission, error)
	// Recent returns up to limit records, newest first. Missing or unreadable
	// records are skipped.
	Recent(ctx context.Context, limit int) ([]*model.ContactSubmission, error)
	Total(ctx context.Context) (int64, error)
}

// CounterKind selects a counter family.
type CounterKind string

const (
	CounterType    CounterKind = "type"
	CounterPage    CounterKind = "page"
	CounterSection CounterKind = "section"
	CounterProject CounterKind = "project"
	CounterDay     CounterKind = "day"
)

// EventRepository persists analytics events and their counters.
type EventRepository interface {
	Append(ctx context.Context, ev *model.AnalyticsEvent) error
	// IncrementCounters bumps every counter ev contributes to: its type, its
	// non-empty page/section/project labels, its UTC day and the grand total.
	IncrementCounters(ctx context.Context, ev *model.AnalyticsEvent, day string) error
	Count(ctx context.Context, kind CounterKind, label string) (int64, error)
	TotalEvents(ctx context.Context) (int64, error)
	LastEventAt(ctx context.Context) (string, error)
	// Recent returns up to limit events, newest first. Undecodable entries are
	// skipped.
	Recent(ctx context.Context, limit int) ([]*model.AnalyticsEvent, error)
}
