package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/evently/internal/adapter"
	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/handler"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/metrics"
	"github.com/MKhiriev/evently/internal/server"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/internal/workers"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API, the gRPC health endpoint and the background
sweeper. Stops gracefully on SIGINT, SIGTERM or SIGQUIT.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()

			return runServe(ctx, flags)
		},
	}
}

func runServe(ctx context.Context, flags *config.Flags) error {
	cfg, err := config.GetStructuredConfig(flags)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "load config").Wrap(err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger("server", cfg.App.Environment)
	log.Info().
		Str("version", orNA(buildVersion)).
		Str("commit", orNA(buildCommit)).
		Str("date", orNA(buildDate)).
		Msg("starting evently")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return oops.Code("STORAGE_FAILED").With("driver", cfg.Storage.Driver).Wrap(err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	sender, err := adapter.NewEmailSender(cfg.Mail, log)
	if err != nil {
		return oops.Code("MAIL_FAILED").With("provider", cfg.Mail.Provider).Wrap(err)
	}

	services, err := service.NewServices(storages, sender, *cfg, log)
	if err != nil {
		return oops.Code("SERVICES_FAILED").Wrap(err)
	}

	handlers, err := handler.NewHandlers(services, storages, *cfg, metrics.Handler(metrics.NewRegistry()), log)
	if err != nil {
		return oops.Code("HANDLERS_FAILED").Wrap(err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return oops.Code("SERVER_FAILED").Wrap(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		workers.NewWorkers(storages, cfg.Workers, log).Run(ctx)
	}()

	err = srv.Run(ctx)
	cancel()
	<-workersDone

	if err != nil {
		return oops.Code("SERVER_FAILED").With("operation", "serve").Wrap(err)
	}
	return nil
}
