package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	catalogapi "github.com/rverdelli/PlatformVA/internal/api/catalog"
	chatapi "github.com/rverdelli/PlatformVA/internal/api/chat"
	"github.com/rverdelli/PlatformVA/internal/api/docs"
	exportapi "github.com/rverdelli/PlatformVA/internal/api/export"
	"github.com/rverdelli/PlatformVA/internal/api/middleware"
	settingsapi "github.com/rverdelli/PlatformVA/internal/api/settings"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	settingsHandler *settingsapi.Handler,
	catalogHandler *catalogapi.Handler,
	chatHandler *chatapi.Handler,
	exportHandler *exportapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(180 * time.Second)) // generation calls are slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	settingsapi.RegisterRoutes(r, settingsHandler)
	catalogapi.RegisterRoutes(r, catalogHandler)
	chatapi.RegisterRoutes(r, chatHandler)
	exportapi.RegisterRoutes(r, exportHandler)

	return r
}
