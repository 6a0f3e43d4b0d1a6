package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

const (
	maxLabelLength = 128
	maxMetaLength  = 512

	DefaultRecentEvents = 20
	MaxRecentEvents     = 100
)

// TrackedLabels is the fixed set of project and section labels Summary
// reports on.
type TrackedLabels struct {
	Projects []string
	Sections []string
}

type analyticsServiceImpl struct {
	repo    repository.EventRepository
	tracked TrackedLabels
	now     func() time.Time
}

// NewAnalyticsService creates the store-backed AnalyticsService.
func NewAnalyticsService(repo repository.EventRepository, tracked TrackedLabels) AnalyticsService {
	return &analyticsServiceImpl{repo: repo, tracked: tracked, now: time.Now}
}

func (s *analyticsServiceImpl) Enabled() bool { return true }

func (s *analyticsServiceImpl) RecordEvent(ctx context.Context, in model.EventInput, meta model.RequestMeta) error {
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return ErrEventTypeRequired
	}
	et := model.EventType(typ)
	if !et.Valid() {
		return ErrInvalidEventType
	}

	page, section, project := strings.TrimSpace(in.Page), strings.TrimSpace(in.Section), strings.TrimSpace(in.Project)
	for _, l := range []string{page, section, project} {
		if utf8.RuneCountInString(l) > maxLabelLength {
			return ErrLabelTooLong
		}
	}

	now := s.now().UTC()
	ev := &model.AnalyticsEvent{
		ID:        newRecordID("event", now),
		Type:      et,
		Page:      page,
		Section:   section,
		Project:   project,
		Timestamp: now.Format(TimestampLayout),
		UserAgent: truncate(meta.UserAgent, maxMetaLength),
		Referrer:  truncate(meta.Referrer, maxMetaLength),
	}

	if err := s.repo.Append(ctx, ev); err != nil {
		return err
	}
	return s.repo.IncrementCounters(ctx, ev, dayOf(now))
}

func (s *analyticsServiceImpl) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	counts, err := s.typeCounts(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.repo.Count(ctx, repository.CounterDay, dayOf(s.now().UTC()))
	if err != nil {
		return nil, err
	}

	summary := &model.AnalyticsSummary{
		Overview: model.AnalyticsOverview{
			TotalPageViews: counts[model.EventPageView],
			ProjectClicks:  counts[model.EventProjectClick],
			SectionViews:   counts[model.EventSectionView],
			ContactClicks:  counts[model.EventContactClick],
			Downloads:      counts[model.EventDownload],
			TodayViews:     today,
		},
		Projects: make(map[string]int64, len(s.tracked.Projects)),
		Sections: make(map[string]int64, len(s.tracked.Sections)),
	}
	for _, p := range s.tracked.Projects {
		n, err := s.repo.Count(ctx, repository.CounterProject, p)
		if err != nil {
			return nil, err
		}
		summary.Projects[p] = n
	}
	for _, sec := range s.tracked.Sections {
		n, err := s.repo.Count(ctx, repository.CounterSection, sec)
		if err != nil {
			return nil, err
		}
		summary.Sections[sec] = n
	}
	return summary, nil
}

func (s *analyticsServiceImpl) Report(ctx context.Context, recentLimit int) (*model.AnalyticsReport, error) {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentEvents
	}
	if recentLimit > MaxRecentEvents {
		recentLimit = MaxRecentEvents
	}

	counts, err := s.typeCounts(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.TotalEvents(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.repo.LastEventAt(ctx)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*model.AnalyticsEvent{}
	}
	return &model.AnalyticsReport{
		EventCounts:  counts,
		RecentEvents: recent,
		TotalEvents:  total,
		LastEventAt:  last,
	}, nil
}

func (s *analyticsServiceImpl) typeCounts(ctx context.Context) (map[model.EventType]int64, error) {
	counts := make(map[model.EventType]int64, len(model.EventTypes))
	for _, et := range model.EventTypes {
		n, err := s.repo.Count(ctx, repository.CounterType, string(et))
		if err != nil {
			return nil, err
		}
		counts[et] = n
	}
	return counts, nil
}

// dayOf returns the UTC calendar date of t as YYYY-MM-DD.
func dayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
