package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// disabledAnalyticsService accepts every event without storing it and
// reports zeros. It is used when ANALYTICS_ENABLED=false.
type disabledAnalyticsService struct{}

// NewDisabledAnalyticsService creates the no-op AnalyticsService.
func NewDisabledAnalyticsService() AnalyticsService {
	return disabledAnalyticsService{}
}

func (disabledAnalyticsService) RecordEvent(context.Context, model.EventInput, model.RequestMeta) error {
	return nil
}

func (disabledAnalyticsService) Summary(context.Context) (*model.AnalyticsSummary, error) {
	return &model.AnalyticsSummary{
		Projects:  map[string]int64{},
		Sections:  map[string]int64{},
		Analytics: "disabled",
	}, nil
}

func (disabledAnalyticsService) Report(context.Context, int) (*model.AnalyticsReport, error) {
	counts := make(map[model.EventType]int64, len(model.EventTypes))
	for _, et := range model.EventTypes {
		counts[et] = 0
	}
	return &model.AnalyticsReport{
		EventCounts:  counts,
		RecentEvents: []*model.AnalyticsEvent{},
		Analytics:    "disabled",
	}, nil
}

func (disabledAnalyticsService) Enabled() bool { return false }
