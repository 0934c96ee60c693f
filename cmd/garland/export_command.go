package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"garland/internal/config"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every nomination as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outPath)
			if target == "" {
				name := fmt.Sprintf("nominations-%s.csv", time.Now().UTC().Format("20060102"))
				target = filepath.Join(cfg.Paths.ExportDir, name)
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve export path: %w", err)
				}
				target = expanded
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			fd, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := st.ExportCSV(cmd.Context(), fd); err != nil {
				fd.Close()
				return fmt.Errorf("export nominations: %w", err)
			}
			if err := fd.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported nominations to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination CSV path (defaults into paths.export_dir)")
	return cmd
}
