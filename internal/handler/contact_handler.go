package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

const (
	contactThanks      = "Thank you for your message! I'll get back to you soon."
	contactSubmitError = "Something went wrong. Please try again."
)

// ContactHandler handles contact form submission and admin listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.contactService.Submit(r.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Msg)
			return
		}
		slog.Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, contactSubmitError)
		return
	}

	slog.Info("contact submission stored", "id", sub.ID)
	writeJSON(w, http.StatusCreated, submitResponse{Success: true, Message: contactThanks, ID: sub.ID})
}

// List handles GET /api/contact (admin only). The optional limit query
// parameter is clamped by the service.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.contactService.ListRecent(r.Context(), limitParam(r, "limit"))
	if err != nil {
		slog.Error("contact list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch submissions")
		return
	}
	if list.Submissions == nil {
		list.Submissions = []*model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, list)
}

// limitParam returns the integer query parameter, or 0 (service default)
// when absent or malformed.
func limitParam(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
