package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and normalizes the input, then stores it. Validation
	// failures are *ValidationError values.
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error)

	// ListRecent returns up to limit submissions, newest first, together with
	// the total number ever submitted. Out-of-range limits are clamped.
	ListRecent(ctx context.Context, limit int) (*model.ContactList, error)
}
