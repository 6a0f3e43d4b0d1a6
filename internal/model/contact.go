package model

// ContactSubmission is a message sent through the contact form. Records are
// immutable once stored.
type ContactSubmission struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // RFC 3339, UTC
}

// ContactInput is the raw, unvalidated form payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactList is a window of the most recent submissions plus the running
// total of all submissions ever accepted.
type ContactList struct {
	Submissions []*ContactSubmission `json:"submissions"`
	Total       int64                `json:"total"`
}
