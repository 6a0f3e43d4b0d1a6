package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/service"
)

// Routes bundles everything NewRouter mounts.
type Routes struct {
	Base             *Handler
	ContactService   service.ContactService
	AnalyticsService service.AnalyticsService

	// ContactLimiter throttles POST /api/contact. nil disables throttling.
	ContactLimiter *RateLimiter

	// RequireAdmin guards the admin endpoints.
	RequireAdmin func(http.Handler) http.Handler
}

// NewRouter builds the API mux wrapped in CORS, security headers and
// request logging.
func NewRouter(rt Routes) http.Handler {
	contactHandler := NewContactHandler(rt.ContactService)
	analyticsHandler := NewAnalyticsHandler(rt.AnalyticsService)
	adminHandler := NewAdminHandler(rt.ContactService, rt.AnalyticsService)

	submit := http.Handler(http.HandlerFunc(contactHandler.Submit))
	if rt.ContactLimiter != nil {
		submit = rt.ContactLimiter.Middleware(submit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", rt.Base.Health)
	mux.Handle("POST /api/contact", submit)
	mux.HandleFunc("POST /api/analytics", analyticsHandler.Record)
	mux.HandleFunc("GET /api/analytics", analyticsHandler.Summary)

	// Admin routes
	mux.Handle("GET /api/contact", rt.RequireAdmin(http.HandlerFunc(contactHandler.List)))
	mux.Handle("GET /api/admin", rt.RequireAdmin(http.HandlerFunc(adminHandler.View)))

	return RequestLogger(SecurityHeaders(rt.Base.CORS(mux)))
}
