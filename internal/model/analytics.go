package model

// EventType is an analytics event category.
type EventType string

const (
	EventPageView     EventType = "page_view"
	EventProjectClick EventType = "project_click"
	EventSectionView  EventType = "section_view"
	EventContactClick EventType = "contact_click"
	EventDownload     EventType = "download"
)

// EventTypes lists every accepted event type in reporting order.
var EventTypes = []EventType{
	EventPageView,
	EventProjectClick,
	EventSectionView,
	EventContactClick,
	EventDownload,
}

// Valid reports whether t is one of EventTypes.
func (t EventType) Valid() bool {
	for _, et := range EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

// AnalyticsEvent is a single recorded event. Records are immutable.
type AnalyticsEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Page      string    `json:"page,omitempty"`
	Section   string    `json:"section,omitempty"`
	Project   string    `json:"project,omitempty"`
	Timestamp string    `json:"timestamp"` // RFC 3339, UTC
	UserAgent string    `json:"userAgent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
}

// EventInput is the raw event payload from the browser.
type EventInput struct {
	Type    string `json:"type"`
	Page    string `json:"page,omitempty"`
	Section string `json:"section,omitempty"`
	Project string `json:"project,omitempty"`
}

// RequestMeta is request-derived metadata captured best-effort.
type RequestMeta struct {
	UserAgent string
	Referrer  string
}

// AnalyticsOverview is the per-type totals block of the public summary.
type AnalyticsOverview struct {
	TotalPageViews int64 `json:"totalPageViews"`
	ProjectClicks  int64 `json:"projectClicks"`
	SectionViews   int64 `json:"sectionViews"`
	ContactClicks  int64 `json:"contactClicks"`
	Downloads      int64 `json:"downloads"`
	TodayViews     int64 `json:"todayViews"`
}

// AnalyticsSummary is the response of GET /api/analytics. Projects and
// Sections are keyed by the configured tracking labels.
type AnalyticsSummary struct {
	Overview  AnalyticsOverview `json:"overview"`
	Projects  map[string]int64  `json:"projects"`
	Sections  map[string]int64  `json:"sections"`
	Analytics string            `json:"analytics,omitempty"` // "disabled" when analytics is off
}

// AnalyticsReport is the admin view of the event stream.
type AnalyticsReport struct {
	EventCounts  map[EventType]int64 `json:"eventCounts"`
	RecentEvents []*AnalyticsEvent   `json:"recentEvents"`
	TotalEvents  int64               `json:"totalEvents"`
	LastEventAt  string              `json:"lastEventAt,omitempty"`
	Analytics    string              `json:"analytics,omitempty"` // "disabled" when analytics is off
}
