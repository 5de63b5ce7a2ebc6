package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tuberelay/internal/http/handlers"
	httpmiddleware "tuberelay/internal/http/middleware"
	"tuberelay/internal/messaging"
	"tuberelay/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	MessagingHandler *messaging.Handler
	AudioHandler     *handlers.AudioFileHandler
	MetricsHandler   http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.MessagingHandler.HealthCheck)
	r.Post("/webhook", cfg.MessagingHandler.Webhook)

	if cfg.AudioHandler != nil {
		r.Get("/audio/{filename}", cfg.AudioHandler.ServeAudio)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
