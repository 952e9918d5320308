package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracehub/trace-export/internal/export"
)

func newExportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <archive.zip>",
		Short: "Export a trace archive into Markdown and HTML files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			archivePath := args[0]
			if outDir == "" {
				outDir = defaultOutDir(archivePath)
			}

			result, err := export.ExportTrace(archivePath, export.Options{OutDir: outDir})
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Printf("exported %d actions, %d errors, %d snapshots to %s\n",
				result.ActionCount, result.ErrorCount, result.RenderedCount, result.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: <archive-basename>-export)")

	return cmd
}

func defaultOutDir(archivePath string) string {
	base := filepath.Base(archivePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "-export"
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
