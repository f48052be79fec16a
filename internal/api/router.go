package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/agentforge/license-server/internal/api/handler"
	"github.com/agentforge/license-server/internal/api/middleware"
	"github.com/agentforge/license-server/internal/license"
	"github.com/agentforge/license-server/internal/webhook"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DB       handler.DBPinger
	Licenses *license.Service
	Ingestor *webhook.Service
	Version  string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DB, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	validateHandler := handler.NewValidateHandler(deps.Licenses)
	r.Post("/validate", validateHandler.ServeHTTP)

	webhookHandler := handler.NewWebhookHandler(deps.Ingestor)
	r.Post("/webhook", webhookHandler.ServeHTTP)

	return r
}
