// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"database/sql"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/migrations"
)

// NewMigrateCmd creates the migrate subcommand. Without a subcommand it
// applies every pending migration.
func NewMigrateCmd(flags *config.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Run all pending database migrations against the PostgreSQL database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, flags, func(db *sql.DB) error {
				cmd.Println("Running migrations...")
				if err := migrations.Migrate(db); err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
				}
				cmd.Println("Migrations completed successfully")
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, flags, func(db *sql.DB) error {
				if err := migrations.Rollback(db); err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "roll back migration").Wrap(err)
				}
				cmd.Println("Rollback completed successfully")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, flags, func(db *sql.DB) error {
				version, err := migrations.Version(db)
				if err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "read version").Wrap(err)
				}
				cmd.Printf("Schema version: %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withDatabase(cmd *cobra.Command, flags *config.Flags, fn func(db *sql.DB) error) error {
	storage, err := config.GetStorageConfig(flags)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "load config").Wrap(err)
	}
	if storage.Driver != config.DriverPostgres {
		return oops.Code("CONFIG_INVALID").With("driver", storage.Driver).
			Errorf("migrations apply to the postgres driver only")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Println("Connecting to database...")
	db, err := store.NewConnectPostgres(ctx, storage.DB, logger.NewLogger("migrate", ""))
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	return fn(db.DB)
}
