package repository

// Store key layout.
const (
	keySubmissions      = "contact:submissions"
	keyTotalSubmissions = "stats:total_submissions"
	keyEvents           = "analytics:events"
	keyTotalEvents      = "stats:total_events"
	keyLastEventAt      = "analytics:last_event_at"
)

func contactKey(id string) string {
	return "contact:" + id
}

func counterKey(kind CounterKind, label string) string {
	return "analytics:" + string(kind) + ":" + label
}
