// Package rest wires the HTTP router for the API.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"ideagraph-backend/application/commands/bus"
	querybus "ideagraph-backend/application/queries/bus"
	"ideagraph-backend/infrastructure/config"
	"ideagraph-backend/interfaces/http/rest/handlers"
	"ideagraph-backend/interfaces/http/rest/middleware"
	"ideagraph-backend/pkg/auth"
	"ideagraph-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg         *config.Config
	commandBus  *bus.CommandBus
	queryBus    *querybus.QueryBus
	validator   *auth.JWTValidator
	ipLimiter   *auth.IPRateLimiter
	userLimiter *auth.UserRateLimiter
	tracer      *observability.Tracer
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator *auth.JWTValidator,
	ipLimiter *auth.IPRateLimiter,
	userLimiter *auth.UserRateLimiter,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:         cfg,
		commandBus:  commandBus,
		queryBus:    queryBus,
		validator:   validator,
		ipLimiter:   ipLimiter,
		userLimiter: userLimiter,
		tracer:      tracer,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Tracing(rt.tracer))
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authenticate := middleware.Authenticate(rt.validator, rt.ipLimiter, rt.userLimiter, rt.logger)

	projectHandler := handlers.NewProjectHandler(rt.commandBus, rt.queryBus, rt.logger)
	ideaHandler := handlers.NewIdeaHandler(rt.queryBus, rt.logger)
	pitchHandler := handlers.NewPitchHandler(rt.commandBus, rt.queryBus, rt.logger)
	documentHandler := handlers.NewDocumentHandler(rt.commandBus, rt.logger)

	router.Route("/api", func(r chi.Router) {
		// Community feed: reads are public, writes require a token
		r.Route("/stealth", func(r chi.Router) {
			r.Get("/", pitchHandler.ListPitches)
			r.Get("/{pitchId}", pitchHandler.GetPitch)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", pitchHandler.CreatePitch)
				r.Patch("/{pitchId}", pitchHandler.EditPitch)
				r.Delete("/{pitchId}", pitchHandler.DeletePitch)
				r.Patch("/{pitchId}/like", pitchHandler.Vote("like"))
				r.Patch("/{pitchId}/dislike", pitchHandler.Vote("dislike"))
				r.Patch("/{pitchId}/approve", pitchHandler.Vote("approve"))
				r.Patch("/{pitchId}/reject", pitchHandler.Vote("reject"))
				r.Post("/{pitchId}/comment", pitchHandler.AddComment)
				r.Delete("/{pitchId}/comment/{commentId}", pitchHandler.DeleteComment)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/idea/analyze", ideaHandler.Analyze)

			r.Route("/project", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.CreateProject)

				r.Route("/{projectId}", func(r chi.Router) {
					r.Get("/", projectHandler.GetProject)
					r.Post("/converse", projectHandler.Converse)
					r.Post("/synthesize", projectHandler.Synthesize)
					r.Post("/rate", projectHandler.RateProject)
					r.Post("/generate-pitch", projectHandler.GeneratePitch)
					r.Patch("/nodes/positions", projectHandler.UpdatePositions)
					r.Put("/node/{nodeId}/regenerate", projectHandler.RegenerateNode)
					r.Delete("/node/{nodeId}", projectHandler.DeleteNode)
				})
			})

			r.Post("/documents/upload", documentHandler.Upload)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
