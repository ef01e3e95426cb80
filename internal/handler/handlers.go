// Package handler builds the transport handlers enabled by the server
// configuration.
package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/handler/grpc"
	"github.com/MKhiriev/evently/internal/handler/http"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates the HTTP handler when an HTTP address is configured
// and the gRPC health handler when a gRPC address is configured. metrics is
// mounted on /metrics and may be nil.
func NewHandlers(services *service.Services, pinger store.Pinger, cfg config.StructuredConfig, metrics nethttp.Handler, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, metrics, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(pinger, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
