package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
	"github.com/portfolio/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		logging.Fatal("failed to open store", "backend", cfg.Store.Backend, "error", err)
	}
	defer store.Close()
	slog.Info("store opened", "backend", cfg.Store.Backend)

	contactRepo := repository.NewKVContactRepository(store)
	contactService := service.NewContactService(contactRepo)

	// Analytics may be switched off entirely; the handlers keep responding.
	analyticsService := service.NewDisabledAnalyticsService()
	if cfg.AnalyticsEnabled {
		eventRepo := repository.NewKVEventRepository(store)
		analyticsService = service.NewAnalyticsService(eventRepo, service.TrackedLabels{
			Projects: cfg.Tracking.Projects,
			Sections: cfg.Tracking.Sections,
		})
	} else {
		slog.Info("analytics disabled")
	}

	requireAdmin := auth.DevAuth
	if cfg.AuthRequired {
		requireAdmin = auth.RequireAdmin([]byte(cfg.AdminJWTSecret))
	} else {
		slog.Warn("admin endpoints are not authenticated (AUTH_REQUIRED=false)")
	}

	router := handler.NewRouter(handler.Routes{
		Base:             handler.New(store, cfg.FrontendURL),
		ContactService:   contactService,
		AnalyticsService: analyticsService,
		ContactLimiter:   handler.NewRateLimiter(ctx, cfg.ContactRateLimit),
		RequireAdmin:     requireAdmin,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
