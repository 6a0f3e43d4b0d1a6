package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// idSuffixLen is the number of leading UUID characters kept in record IDs.
const idSuffixLen = 8

// newRecordID returns "<kind>_<unix-ms>_<uuid-prefix>", e.g.
// contact_1700000000000_1f0c6a2e.
func newRecordID(kind string, t time.Time) string {
	return fmt.Sprintf("%s_%d_%s", kind, t.UnixMilli(), uuid.NewString()[:idSuffixLen])
}
