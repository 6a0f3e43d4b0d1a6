package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// Admin view types accepted by GET /api/admin?type=...
const (
	AdminViewContacts  = "contacts"
	AdminViewAnalytics = "analytics"
	AdminViewAll       = "all"
)

// AdminHandler serves the read-only admin aggregation view.
type AdminHandler struct {
	contactService   service.ContactService
	analyticsService service.AnalyticsService
	now              func() time.Time
}

// NewAdminHandler creates an AdminHandler over both services.
func NewAdminHandler(contactService service.ContactService, analyticsService service.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		contactService:   contactService,
		analyticsService: analyticsService,
		now:              time.Now,
	}
}

type adminContactsResponse struct {
	Contacts []*model.ContactSubmission `json:"contacts"`
}

type adminTotalsResponse struct {
	TotalContacts        int64  `json:"totalContacts"`
	TotalAnalyticsEvents int64  `json:"totalAnalyticsEvents"`
	LastUpdated          string `json:"lastUpdated"`
	Analytics            string `json:"analytics,omitempty"`
}

// View handles GET /api/admin. Unknown or missing type values return the
// totals view.
func (h *AdminHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.URL.Query().Get("type") {
	case AdminViewContacts:
		list, err := h.contactService.ListRecent(ctx, limitParam(r, "limit"))
		if err != nil {
			h.fail(w, "contacts", err)
			return
		}
		contacts := list.Submissions
		if contacts == nil {
			contacts = []*model.ContactSubmission{}
		}
		writeJSON(w, http.StatusOK, adminContactsResponse{Contacts: contacts})

	case AdminViewAnalytics:
		report, err := h.analyticsService.Report(ctx, limitParam(r, "limit"))
		if err != nil {
			h.fail(w, "analytics", err)
			return
		}
		writeJSON(w, http.StatusOK, report)

	default:
		list, err := h.contactService.ListRecent(ctx, 1)
		if err != nil {
			h.fail(w, "all", err)
			return
		}
		report, err := h.analyticsService.Report(ctx, 1)
		if err != nil {
			h.fail(w, "all", err)
			return
		}
		writeJSON(w, http.StatusOK, adminTotalsResponse{
			TotalContacts:        list.Total,
			TotalAnalyticsEvents: report.TotalEvents,
			LastUpdated:          h.now().UTC().Format(service.TimestampLayout),
			Analytics:            report.Analytics,
		})
	}
}

func (h *AdminHandler) fail(w http.ResponseWriter, view string, err error) {
	slog.Error("admin view failed", "view", view, "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to fetch admin data")
}
