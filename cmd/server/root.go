package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/evently/internal/config"
)

// NewRootCmd creates the root command. Configuration flags are persistent so
// every subcommand reads the same sources.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evently",
		Short: "Evently - event management backend",
		Long: `Evently serves the account, event and ticket API together with a
gRPC health endpoint, and manages the postgres schema.`,
		SilenceUsage: true,
	}

	flags := config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd(flags))
	cmd.AddCommand(NewMigrateCmd(flags))

	return cmd
}
