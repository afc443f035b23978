package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	buildapi "github.com/pcforge/builder-backend/internal/api/build"
	chatroomapi "github.com/pcforge/builder-backend/internal/api/chatroom"
	"github.com/pcforge/builder-backend/internal/api/docs"
	"github.com/pcforge/builder-backend/internal/api/middleware"
	personalisationapi "github.com/pcforge/builder-backend/internal/api/personalisation"
	userapi "github.com/pcforge/builder-backend/internal/api/user"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	buildHandler *buildapi.Handler,
	userHandler *userapi.Handler,
	chatroomHandler *chatroomapi.Handler,
	personalisationHandler *personalisationapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Versioned API surface
	r.Route("/api/v1", func(r chi.Router) {
		buildapi.RegisterRoutes(r, buildHandler)
		userapi.RegisterRoutes(r, userHandler)
		chatroomapi.RegisterRoutes(r, chatroomHandler)
		personalisationapi.RegisterRoutes(r, personalisationHandler)
	})

	return r
}
