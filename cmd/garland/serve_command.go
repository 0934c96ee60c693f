package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"garland/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the read API",
		Long: "Serves the reconciled dataset over HTTP on api.bind until " +
			"interrupted: ceremonies, categories, nominations, title and " +
			"entity profiles, and search.",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := server.New(cfg, st, logger)
			if err != nil {
				return err
			}
			return srv.Run(signalCtx)
		},
	}
}
