package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock AnalyticsService
// ---------------------------------------------------------------------------

type mockAnalyticsService struct {
	disabled    bool
	recordFunc  func(ctx context.Context, in model.EventInput, meta model.RequestMeta) error
	summaryFunc func(ctx context.Context) (*model.AnalyticsSummary, error)
	reportFunc  func(ctx context.Context, recentLimit int) (*model.AnalyticsReport, error)
}

func (m *mockAnalyticsService) RecordEvent(ctx context.Context, in model.EventInput, meta model.RequestMeta) error {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, in, meta)
	}
	return nil
}

func (m *mockAnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx)
	}
	return &model.AnalyticsSummary{Projects: map[string]int64{}, Sections: map[string]int64{}}, nil
}

func (m *mockAnalyticsService) Report(ctx context.Context, recentLimit int) (*model.AnalyticsReport, error) {
	if m.reportFunc != nil {
		return m.reportFunc(ctx, recentLimit)
	}
	return &model.AnalyticsReport{EventCounts: map[model.EventType]int64{}, RecentEvents: []*model.AnalyticsEvent{}}, nil
}

func (m *mockAnalyticsService) Enabled() bool { return !m.disabled }

// ---------------------------------------------------------------------------
// POST /api/analytics tests
// ---------------------------------------------------------------------------

func TestAnalyticsHandler_Record_Success(t *testing.T) {
	var gotIn model.EventInput
	var gotMeta model.RequestMeta
	mock := &mockAnalyticsService{
		recordFunc: func(ctx context.Context, in model.EventInput, meta model.RequestMeta) error {
			gotIn, gotMeta = in, meta
			return nil
		},
	}
	h := NewAnalyticsHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(`{"type":"project_click","project":"ecovest"}`))
	req.Header.Set("User-Agent", "test-agent/1.0")
	req.Header.Set("Referer", "https://example.com/")
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotIn.Type != "project_click" || gotIn.Project != "ecovest" {
		t.Errorf("unexpected input: %+v", gotIn)
	}
	if gotMeta.UserAgent != "test-agent/1.0" || gotMeta.Referrer != "https://example.com/" {
		t.Errorf("unexpected meta: %+v", gotMeta)
	}
	var resp recordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Analytics != "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAnalyticsHandler_Record_ValidationError(t *testing.T) {
	mock := &mockAnalyticsService{
		recordFunc: func(ctx context.Context, in model.EventInput, meta model.RequestMeta) error {
			return service.ErrEventTypeRequired
		},
	}
	h := NewAnalyticsHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(`{"page":"/"}`))
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "Event type is required" {
		t.Errorf("unexpected error %q", resp["error"])
	}
}

func TestAnalyticsHandler_Record_InvalidJSON(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyticsHandler_Record_StoreError(t *testing.T) {
	mock := &mockAnalyticsService{
		recordFunc: func(ctx context.Context, in model.EventInput, meta model.RequestMeta) error {
			return errors.New("connection reset")
		},
	}
	h := NewAnalyticsHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(`{"type":"page_view"}`))
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Errorf("response leaks internal error: %s", rec.Body.String())
	}
}

// TestAnalyticsHandler_Record_Disabled verifies disabled analytics accepts
// any body without calling RecordEvent.
func TestAnalyticsHandler_Record_Disabled(t *testing.T) {
	called := false
	mock := &mockAnalyticsService{
		disabled: true,
		recordFunc: func(ctx context.Context, in model.EventInput, meta model.RequestMeta) error {
			called = true
			return nil
		},
	}
	h := NewAnalyticsHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader("garbage"))
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if called {
		t.Error("RecordEvent must not be called when analytics is disabled")
	}
	var resp recordResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if !resp.Success || resp.Analytics != "disabled" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// ---------------------------------------------------------------------------
// GET /api/analytics tests
// ---------------------------------------------------------------------------

func TestAnalyticsHandler_Summary(t *testing.T) {
	mock := &mockAnalyticsService{
		summaryFunc: func(ctx context.Context) (*model.AnalyticsSummary, error) {
			return &model.AnalyticsSummary{
				Overview: model.AnalyticsOverview{TotalPageViews: 3, TodayViews: 1},
				Projects: map[string]int64{"ecovest": 2},
				Sections: map[string]int64{"hero": 0},
			}, nil
		},
	}
	h := NewAnalyticsHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp model.AnalyticsSummary
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Overview.TotalPageViews != 3 || resp.Overview.TodayViews != 1 {
		t.Errorf("unexpected overview: %+v", resp.Overview)
	}
	if resp.Projects["ecovest"] != 2 {
		t.Errorf("expected ecovest=2, got %d", resp.Projects["ecovest"])
	}
	if v, ok := resp.Sections["hero"]; !ok || v != 0 {
		t.Errorf("expected hero=0 present, got %v %v", v, ok)
	}
}

func TestAnalyticsHandler_Summary_Error(t *testing.T) {
	mock := &mockAnalyticsService{
		summaryFunc: func(ctx context.Context) (*model.AnalyticsSummary, error) {
			return nil, errors.New("boom")
		},
	}
	h := NewAnalyticsHandler(mock)

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/analytics", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRequestMeta(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analytics", nil)
	meta := requestMeta(req)
	if meta.UserAgent != "" || meta.Referrer != "" {
		t.Errorf("expected empty meta, got %+v", meta)
	}

	req.Header.Set("User-Agent", "ua")
	req.Header.Set("Referer", "ref")
	meta = requestMeta(req)
	if meta.UserAgent != "ua" || meta.Referrer != "ref" {
		t.Errorf("unexpected meta: %+v", meta)
	}
}
