package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/model"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

// requestMeta collects request metadata for analytics events. Absent headers
// are left empty.
func requestMeta(r *http.Request) model.RequestMeta {
	return model.RequestMeta{
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
}
