package service

import (
	"regexp"
	"testing"
	"time"
)

func TestNewRecordID_Format(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	pattern := regexp.MustCompile(`^contact_1767323045000_[0-9a-f]{8}$`)

	id := newRecordID("contact", at)
	if !pattern.MatchString(id) {
		t.Errorf("unexpected ID format %q", id)
	}
	if other := newRecordID("contact", at); other == id {
		t.Errorf("expected distinct IDs within the same millisecond, got %q twice", id)
	}
}
