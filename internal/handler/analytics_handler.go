package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// AnalyticsHandler handles event ingestion and the public counter summary.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler with the given service.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type recordResponse struct {
	Success   bool   `json:"success"`
	Analytics string `json:"analytics,omitempty"`
}

// Record handles POST /api/analytics.
func (h *AnalyticsHandler) Record(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	// Disabled analytics accepts anything, including unparsable bodies.
	if !h.analyticsService.Enabled() {
		_, _ = io.Copy(io.Discard, body)
		writeJSON(w, http.StatusOK, recordResponse{Success: true, Analytics: "disabled"})
		return
	}

	var in model.EventInput
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.analyticsService.RecordEvent(r.Context(), in, requestMeta(r)); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Msg)
			return
		}
		slog.Error("record analytics event failed", "type", in.Type, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to record event")
		return
	}

	writeJSON(w, http.StatusOK, recordResponse{Success: true})
}

// Summary handles GET /api/analytics.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.Summary(r.Context())
	if err != nil {
		slog.Error("analytics summary failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
