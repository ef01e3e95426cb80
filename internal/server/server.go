package server

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/handler"
	"github.com/MKhiriev/evently/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	// ready is closed once every listener is bound.
	ready chan struct{}

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{ready: make(chan struct{}), logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// Run binds every listener, serves until ctx is done or a transport fails,
// and then shuts everything down. The first transport error is returned.
func (s *server) Run(ctx context.Context) error {
	if err := s.listen(); err != nil {
		return err
	}
	close(s.ready)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	serve := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.logger.Err(err).Str("server", name).Msg("server stopped with error")
				errOnce.Do(func() { firstErr = err })
				cancel()
			}
		}()
	}

	if s.httpServer != nil {
		serve("http", s.httpServer.Serve)
	}
	if s.gRPCServer != nil {
		serve("grpc", s.gRPCServer.Serve)
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.gRPCServer.Watch(ctx)
		}()
	}

	<-ctx.Done()
	s.shutdown()
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
	return firstErr
}

// listen binds every enabled transport so that address errors surface
// before anything is served.
func (s *server) listen() error {
	if s.httpServer != nil {
		if err := s.httpServer.Listen(); err != nil {
			return err
		}
	}
	if s.gRPCServer != nil {
		if err := s.gRPCServer.Listen(); err != nil {
			if s.httpServer != nil {
				_ = s.httpServer.listener.Close()
			}
			return err
		}
	}
	return nil
}

func (s *server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}
