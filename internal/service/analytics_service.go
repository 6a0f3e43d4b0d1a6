package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// AnalyticsService records analytics events and reports their counters.
type AnalyticsService interface {
	// RecordEvent validates and stores an event and increments its counters.
	RecordEvent(ctx context.Context, in model.EventInput, meta model.RequestMeta) error

	// Summary returns the public counter overview.
	Summary(ctx context.Context) (*model.AnalyticsSummary, error)

	// Report returns per-type counts and the most recent events for the
	// admin view.
	Report(ctx context.Context, recentLimit int) (*model.AnalyticsReport, error)

	// Enabled is false for the no-op implementation.
	Enabled() bool
}
