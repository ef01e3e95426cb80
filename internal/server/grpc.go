package server

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/evently/internal/config"
	myGRPC "github.com/MKhiriev/evently/internal/handler/grpc"
	"github.com/MKhiriev/evently/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	address  string
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(handler.LogUnary))
	handler.Register(srv)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  srv,
		logger:  logger,
	}
}

func (g *grpcServer) Listen() error {
	ln, err := net.Listen("tcp", g.address)
	if err != nil {
		return err
	}
	g.listener = ln
	return nil
}

func (g *grpcServer) Addr() string {
	return g.listener.Addr().String()
}

func (g *grpcServer) Serve() error {
	g.logger.Info().Str("address", g.Addr()).Msg("gRPC server listening")
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Watch keeps the health status current until ctx is done.
func (g *grpcServer) Watch(ctx context.Context) {
	g.handler.Watch(ctx)
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.server.GracefulStop()
}
