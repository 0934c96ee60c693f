package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Rebuild the dataset from scratch",
		Long: "Drops every stored record and reconstructs the dataset from the " +
			"configured registry snapshot and the event page cache, editions 1 " +
			"through award.current_edition.",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := ctx.newPipeline(st, logger)
			if err != nil {
				return err
			}

			if err := ctx.withWriteLock(func() error {
				return p.Rebuild(signalCtx)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset rebuilt at %s\n", st.Path())
			return nil
		},
	}
}
