package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Dry-run the matcher over an edition range",
		Long: "Reconciles the official and catalog sources for each edition in " +
			"the range and prints a per-edition summary with any inexact name " +
			"pairings. Nothing is written.",
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

			reports, err := p.Match(signalCtx, start, end)
			out := cmd.OutOrStdout()

			if len(reports) > 0 {
				rows := make([][]string, 0, len(reports))
				warningTotal := 0
				for _, report := range reports {
					rows = append(rows, []string{
						strconv.Itoa(report.Edition),
						strconv.Itoa(len(report.Categories)),
						strconv.Itoa(len(report.Nominees())),
						strconv.Itoa(len(report.Warnings)),
					})
					warningTotal += len(report.Warnings)
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Edition", "Categories", "Nominees", "Warnings"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
				))

				for _, report := range reports {
					for _, warning := range report.Warnings {
						fmt.Fprintf(out, "  edition %d: statement %q paired with catalog credit %q\n",
							report.Edition, warning.Official, warning.IMDb)
					}
				}

				colorize := isTerminalWriter(cmd.OutOrStdout())
				if err == nil && warningTotal == 0 {
					fmt.Fprintln(out, renderStatusLine("Match", statusOK, "all editions reconciled exactly", colorize))
				} else if err == nil {
					fmt.Fprintln(out, renderStatusLine("Match", statusWarn,
						fmt.Sprintf("%d inexact name pairings", warningTotal), colorize))
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&start, "start", 1, "First edition to reconcile (inclusive)")
	cmd.Flags().IntVar(&end, "end", 0, "Last edition to reconcile (inclusive, defaults to award.current_edition)")
	return cmd
}

func isTerminalWriter(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
