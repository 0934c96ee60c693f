package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var edition int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Ingest one pending edition",
		Long: "Scrapes the announced nominations for a ceremony whose results " +
			"are not yet in the awards database, reconciles them against the " +
			"event page, and stores them with the pending flag set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if edition < 1 {
				return fmt.Errorf("--edition must be a positive iteration, got %d", edition)
			}

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
				return p.UpdatePending(signalCtx, edition)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Edition %d ingested as pending\n", edition)
			return nil
		},
	}

	cmd.Flags().IntVar(&edition, "edition", 0, "Iteration of the pending ceremony")
	_ = cmd.MarkFlagRequired("edition")
	return cmd
}
