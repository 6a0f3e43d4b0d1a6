package service

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

const (
	maxMessageLength = 5000

	DefaultContactLimit = 10
	MaxContactLimit     = 100
)

// TimestampLayout renders UTC times like JavaScript's Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo  repository.ContactRepository
	now   func() time.Time
	newID func(time.Time) string
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo, now: time.Now, newID: newContactID}
}

func newContactID(t time.Time) string {
	return newRecordID("contact", t)
}

func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	message := strings.TrimSpace(in.Message)

	if name == "" || email == "" || message == "" {
		return nil, ErrFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, ErrMessageTooLong
	}

	now := s.now().UTC()
	sub := &model.ContactSubmission{
		ID:        s.newID(now),
		Name:      name,
		Email:     email,
		Message:   message,
		Timestamp: now.Format(TimestampLayout),
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *contactServiceImpl) ListRecent(ctx context.Context, limit int) (*model.ContactList, error) {
	if limit <= 0 {
		limit = DefaultContactLimit
	}
	if limit > MaxContactLimit {
		limit = MaxContactLimit
	}

	subs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Total(ctx)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []*model.ContactSubmission{}
	}
	return &model.ContactList{Submissions: subs, Total: total}, nil
}
