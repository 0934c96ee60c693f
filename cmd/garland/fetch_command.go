package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Prefetch event page data into the cache",
		Long: "Downloads the event page payload for each edition in the range " +
			"into the cache directory, pausing sources.fetch_delay seconds " +
			"between fetches. Cached editions are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			p, err := ctx.newPipeline(nil, logger)
			if err != nil {
				return err
			}

			if err := p.Prefetch(signalCtx, start, end); err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event pages cached under %s\n", cfg.IMDbCacheDir())
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 1, "First edition to fetch (inclusive)")
	cmd.Flags().IntVar(&end, "end", 0, "Last edition to fetch (inclusive, defaults to award.current_edition)")
	return cmd
}
