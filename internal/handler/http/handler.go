package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
)

// Handler owns the HTTP handlers and middleware of the server.
type Handler struct {
	services *service.Services

	// production hides stack traces from error responses.
	production bool

	requestTimeout time.Duration
	allowedOrigins []string
	rateLimit      int
	rateWindow     time.Duration

	// metrics serves GET /metrics when non-nil.
	metrics http.Handler

	logger *logger.Logger
}

// NewHandler builds a Handler from the application and server settings.
// metrics may be nil, in which case /metrics is not mounted.
func NewHandler(services *service.Services, cfg config.StructuredConfig, metrics http.Handler, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		production:     cfg.App.IsProduction(),
		requestTimeout: cfg.Server.RequestTimeout,
		allowedOrigins: cfg.Server.AllowedOrigins,
		rateLimit:      cfg.Server.RateLimit,
		rateWindow:     cfg.Server.RateWindow,
		metrics:        metrics,
		logger:         logger,
	}
}
