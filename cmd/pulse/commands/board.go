package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dyluth/pulse/internal/export"
	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/pkg/board"
)

var boardExportOut string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect and export the ops board",
}

var boardExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the facility's committed barcodes",
	Long: `Export every committed barcode record, oldest first.

The output format follows the file extension:
  .jsonl     one JSON object per line
  .jsonl.xz  the same stream, xz-compressed
  .xlsx      a spreadsheet manifest

Examples:
  pulse board export --out commits.jsonl
  pulse board export --out archive-2026-08.jsonl.xz
  pulse board export --out barcodes.xlsx`,
	RunE: runBoardExport,
}

func init() {
	boardExportCmd.Flags().StringVar(&boardExportOut, "out", "", "Output file, .jsonl, .jsonl.xz or .xlsx (required)")
	boardExportCmd.MarkFlagRequired("out")

	boardCmd.AddCommand(boardExportCmd)
	rootCmd.AddCommand(boardCmd)
}

func runBoardExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessDataAnalysis); err != nil {
		return err
	}

	records, err := e.client.ListCommits(ctx)
	if err != nil {
		return printer.Error("failed to read commits", err.Error(), nil)
	}

	if err := export.WriteFile(boardExportOut, records); err != nil {
		return printer.Error("export failed", err.Error(), nil)
	}

	printer.Success("Exported %d record(s) to %s\n", len(records), boardExportOut)
	return nil
}
