// Package grpc exposes the standard gRPC health service of the evently
// server. Its serving status follows the reachability of the record store.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "evently.Evently"

const (
	defaultCheckInterval = 15 * time.Second
	pingTimeout          = 3 * time.Second
)

// Handler is the root gRPC transport handler.
//
// It owns a [health.Server] whose status is refreshed from the store ping by
// [Handler.Watch]. A handler instance is created once at startup and shared
// by the gRPC server.
type Handler struct {
	health   *health.Server
	pinger   store.Pinger
	interval time.Duration

	serving bool

	logger *logger.Logger
}

// NewHandler constructs a [Handler] that reports NOT_SERVING until the first
// successful store ping.
func NewHandler(pinger store.Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health:   health.NewServer(),
		pinger:   pinger,
		interval: defaultCheckInterval,
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// CheckStore pings the store once and publishes the result.
func (h *Handler) CheckStore(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := h.pinger.Ping(ctx)
	serving := err == nil

	if serving != h.serving {
		if serving {
			h.logger.Info().Msg("store reachable, reporting SERVING")
		} else {
			h.logger.Warn().Err(err).Msg("store unreachable, reporting NOT_SERVING")
		}
	}

	h.serving = serving
	if serving {
		h.setStatus(healthpb.HealthCheckResponse_SERVING)
	} else {
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	}
}

// Watch checks the store immediately and then on every interval until ctx
// is done. On return every service is reported NOT_SERVING.
func (h *Handler) Watch(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.CheckStore(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.CheckStore(ctx)
		}
	}
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// LogUnary is a unary server interceptor writing one access log line per
// call.
func (h *Handler) LogUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	event := h.logger.Debug()
	if err != nil {
		event = h.logger.Warn().Err(err)
	}
	event.Str("method", info.FullMethod).Dur("duration", time.Since(start)).Send()

	return resp, err
}
