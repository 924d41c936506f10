package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/internal/timespec"
	"github.com/dyluth/pulse/internal/track"
	"github.com/dyluth/pulse/pkg/board"
)

var (
	trackSince   string
	trackUntil   string
	trackStation string
	trackChart   string
)

var trackCmd = &cobra.Command{
	Use:   "track CODE",
	Short: "Look up a shipment's tracking history",
	Long: `Look up the tracking history of a scanned code.

The code's namespace is inferred from its length: 8 characters for an
order number, 10 for a lead barcode, 11 for an iso barcode.

Events are listed oldest first. A REPRINT event starts a new branch in
the printed history, matching the flow chart.

Time filters accept RFC3339 timestamps or relative durations:

  pulse track 12345678 --since 24h
  pulse track m000000004x --since 2026-08-01T00:00:00Z --until 2026-08-02T00:00:00Z
  pulse track 1234567890 --station "PRINT-*"
  pulse track 12345678 --chart history.png`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

var trackWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail the facility's live tracking feed",
	Long: `Print tracking events for the whole facility as they arrive.

Runs until interrupted.`,
	RunE: runTrackWatch,
}

func init() {
	trackCmd.Flags().StringVar(&trackSince, "since", "", "Only events after this time (duration like '24h' or RFC3339)")
	trackCmd.Flags().StringVar(&trackUntil, "until", "", "Only events before this time (duration or RFC3339)")
	trackCmd.Flags().StringVar(&trackStation, "station", "", "Only events whose station matches this glob")
	trackCmd.Flags().StringVar(&trackChart, "chart", "", "Write the history flow chart to this PNG file")

	trackCmd.AddCommand(trackWatchCmd)
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessTrackingTool); err != nil {
		return err
	}

	sinceMS, untilMS, err := timespec.ParseRange(trackSince, trackUntil)
	if err != nil {
		return printer.Error("invalid time filter", err.Error(), nil)
	}
	criteria := &track.Criteria{
		SinceTimestampMs: sinceMS,
		UntilTimestampMs: untilMS,
		StationGlob:      trackStation,
	}

	result, err := track.NewSearcher(e.client).Search(ctx, args[0], criteria)
	if err != nil {
		return printer.Error("tracking lookup failed", err.Error(), nil)
	}

	if len(result.Events) == 0 {
		if criteria.HasFilters() {
			printer.Println("No events match the filters.")
		} else {
			printer.Printf("No history recorded for %s %s.\n", result.Kind, result.Code)
		}
		return nil
	}

	printer.Printf("History for %s %s (%d event(s)):\n\n", result.Kind, result.Code, len(result.Events))
	for _, node := range track.Layout(result.Events) {
		marker := "  "
		if node.Reprint {
			marker = "↳ " // reprint branches start a new column
		}
		printer.Printf("%s%s\n", marker, track.EventLine(node.Event))
	}

	if trackChart != "" {
		f, err := os.Create(trackChart)
		if err != nil {
			return printer.Error("failed to create chart file", err.Error(), nil)
		}
		defer f.Close()

		if err := track.WriteChart(f, result.Events); err != nil {
			return printer.Error("failed to render chart", err.Error(), nil)
		}
		printer.Success("Wrote flow chart to %s\n", trackChart)
	}
	return nil
}

func runTrackWatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessTrackingTool); err != nil {
		return err
	}

	printer.Info("Watching tracking events for facility '%s' (Ctrl-C to stop)...\n", e.cfg.Facility.Name)
	if err := track.Tail(ctx, e.client, os.Stdout); err != nil && err != context.Canceled {
		return printer.Error("tracking feed ended", err.Error(), nil)
	}
	return nil
}
