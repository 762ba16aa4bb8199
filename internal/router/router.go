package router

import (
	"net/http"

	"sampleroom-api/internal/handler"
	"sampleroom-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	ProductionHandler *handler.ProductionHandler
	SampleHandler     *handler.SampleHandler
	InventoryHandler  *handler.InventoryHandler
	TeamHandler       *handler.TeamHandler
	RequestHandler    *handler.RequestHandler
	CommentHandler    *handler.CommentHandler
	AuditHandler      *handler.AuditHandler
	ActorMiddleware   func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Actor-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.ActorMiddleware != nil {
		r.Use(cfg.ActorMiddleware)
	}

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check endpoints
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		// Production item endpoints
		if cfg.ProductionHandler != nil {
			r.Route("/production-items", func(r chi.Router) {
				r.Post("/", cfg.ProductionHandler.Create)
				r.Get("/", cfg.ProductionHandler.List)
				r.Get("/{id}", cfg.ProductionHandler.Get)
				r.Patch("/{id}", cfg.ProductionHandler.Update)
				r.Delete("/{id}", cfg.ProductionHandler.Delete)
				r.Get("/{id}/availability", cfg.ProductionHandler.Availability)

				if cfg.SampleHandler != nil {
					r.Get("/{id}/sample-items", cfg.SampleHandler.ListByProduction)
					r.Post("/{id}/sample-items:batch", cfg.SampleHandler.CreateBatch)
				}
			})
		}

		// Sample item endpoints
		if cfg.SampleHandler != nil {
			r.Route("/sample-items", func(r chi.Router) {
				r.Post("/", cfg.SampleHandler.Create)
				r.Get("/{id}", cfg.SampleHandler.Get)
				r.Patch("/{id}", cfg.SampleHandler.Update)
				r.Delete("/{id}", cfg.SampleHandler.Delete)
				r.Get("/{id}/availability", cfg.SampleHandler.Availability)
			})
		}

		// Inventory unit endpoints
		if cfg.InventoryHandler != nil {
			r.Route("/inventory", func(r chi.Router) {
				r.Post("/", cfg.InventoryHandler.Create)
				r.Patch("/{id}", cfg.InventoryHandler.Update)
			})
		}

		// Team endpoints
		if cfg.TeamHandler != nil {
			r.Route("/teams", func(r chi.Router) {
				r.Post("/", cfg.TeamHandler.Create)
				r.Get("/", cfg.TeamHandler.List)
				r.Get("/{id}", cfg.TeamHandler.Get)
				r.Delete("/{id}", cfg.TeamHandler.Delete)
			})
		}

		// Sample request endpoints
		if cfg.RequestHandler != nil {
			r.Route("/requests", func(r chi.Router) {
				r.Post("/", cfg.RequestHandler.Create)
				r.Get("/", cfg.RequestHandler.List)
				r.Get("/stats", cfg.RequestHandler.Stats)
				r.Get("/{id}", cfg.RequestHandler.Get)
				r.Patch("/{id}", cfg.RequestHandler.Update)
				r.Post("/{id}/status", cfg.RequestHandler.UpdateStatus)
			})
		}

		// Comment endpoints
		if cfg.CommentHandler != nil {
			r.Route("/comments", func(r chi.Router) {
				r.Post("/", cfg.CommentHandler.Create)
				r.Get("/", cfg.CommentHandler.Thread)
				r.Patch("/{id}", cfg.CommentHandler.Update)
				r.Delete("/{id}", cfg.CommentHandler.Delete)
			})
		}

		// Audit trail endpoint
		if cfg.AuditHandler != nil {
			r.Get("/audit/{entityType}/{entityId}", cfg.AuditHandler.Trail)
		}
	})

	return r
}
