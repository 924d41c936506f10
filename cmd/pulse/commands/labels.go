package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	commitpkg "github.com/dyluth/pulse/internal/commit"
	"github.com/dyluth/pulse/internal/export"
	"github.com/dyluth/pulse/internal/labels"
	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/internal/render"
	"github.com/dyluth/pulse/internal/taskfile"
	"github.com/dyluth/pulse/internal/transition"
	"github.com/dyluth/pulse/internal/watch"
	"github.com/dyluth/pulse/pkg/board"
)

var (
	labelsTasksFile string
	labelsEmployees []string
	labelsStartCode string
	labelsPage      int
	labelsRenderDir string
	labelsCommit    bool
	labelsWatch     bool
	labelsManifest  string
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Generate manual task label batches",
}

var labelsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Expand a task table into a numbered label batch",
	Long: `Expand a task table into a batch of barcode labels.

Each table row ({task, quantity, barcode count}) becomes barcode-count
labels captioned "{task} x {quantity}", numbered sequentially and laid
out twelve to a page. With --employees, each caption's labels are split
evenly across the roster in order, the first names taking the remainder.

Rows whose quantity or barcode count is not a number are skipped.

The task table is a .xlsx or .xls file with task/quantity/barcodes
columns (header names are matched loosely).

Start codes:
  --start-code auto     continue from the last barcode committed to the board
  --start-code m0000000500  continue from an explicit barcode
  (omitted)             start numbering at m0000000000

Examples:
  # Preview a batch
  pulse labels generate --tasks monday.xlsx

  # Split across a roster and render the print sheets
  pulse labels generate --tasks monday.xlsx --employees "Alice,Bob" --render ./sheets

  # Post the batch to the task sink and wait for it to land on the board
  pulse labels generate --tasks monday.xlsx --employees "Alice,Bob" --start-code auto --commit --watch`,
	RunE: runLabelsGenerate,
}

func init() {
	labelsGenerateCmd.Flags().StringVar(&labelsTasksFile, "tasks", "", "Task table file, .xlsx or .xls (required)")
	labelsGenerateCmd.Flags().StringSliceVar(&labelsEmployees, "employees", nil, "Comma-separated roster to split the batch across")
	labelsGenerateCmd.Flags().StringVar(&labelsStartCode, "start-code", "", "Barcode to continue numbering from, or 'auto'")
	labelsGenerateCmd.Flags().IntVar(&labelsPage, "page", 1, "Page to preview (1-based)")
	labelsGenerateCmd.Flags().StringVar(&labelsRenderDir, "render", "", "Directory to write page-N.png print sheets into")
	labelsGenerateCmd.Flags().BoolVar(&labelsCommit, "commit", false, "Post the batch to the task sink")
	labelsGenerateCmd.Flags().BoolVarP(&labelsWatch, "watch", "w", false, "After --commit, wait for the batch to land on the board")
	labelsGenerateCmd.Flags().StringVar(&labelsManifest, "manifest", "", "Write an .xlsx manifest of the batch")
	labelsGenerateCmd.MarkFlagRequired("tasks")

	labelsCmd.AddCommand(labelsGenerateCmd)
	rootCmd.AddCommand(labelsCmd)
}

func runLabelsGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.requireAccess(ctx, board.AccessManualTasks); err != nil {
		return err
	}

	// Deduplicate the roster up front; repeated names are a no-op, same
	// as the assignment table.
	roster := labels.NewRoster()
	for _, name := range labelsEmployees {
		if !roster.Add(name) {
			printer.Warning("ignoring duplicate roster entry %q\n", name)
		}
	}

	if labelsCommit && roster.Len() == 0 {
		return printer.Error(
			"commit refused",
			"A batch cannot be committed without employees to assign it to.",
			[]string{"Pass --employees with at least one name"},
		)
	}
	if labelsCommit && e.cfg.Sink == nil {
		return printer.Error(
			"no task sink configured",
			"Committing posts each barcode to the task sink, but pulse.yml has no sink block.",
			[]string{"Add sink.base_url to pulse.yml"},
		)
	}

	// Pipeline state shared across stages.
	var (
		rows      []labels.Row
		generator *labels.Generator
		batch     []labels.Label
		dist      labels.Distribution
		summary   commitpkg.Summary
	)

	stages := []transition.Stage{
		{Name: "read tasks", Run: func(ctx context.Context) error {
			var err error
			rows, err = taskfile.ReadRows(labelsTasksFile)
			return err
		}},
		{Name: "resolve start code", Run: func(ctx context.Context) error {
			startCode := labelsStartCode
			if startCode == "auto" {
				latest, err := e.client.LatestIssuedBarcode(ctx)
				switch {
				case board.IsNotFound(err):
					startCode = ""
				case err != nil:
					return err
				default:
					startCode = labels.NextStartCode(latest)
				}
			}
			generator = labels.NewGenerator(startCode)
			return nil
		}},
		{Name: "generate", Run: func(ctx context.Context) error {
			batch = generator.Generate(rows)
			return nil
		}},
		{Name: "distribute", Run: func(ctx context.Context) error {
			dist = labels.Distribute(batch, roster.Names())
			return nil
		}},
	}

	if labelsRenderDir != "" {
		stages = append(stages, transition.Stage{Name: "render sheets", Run: func(ctx context.Context) error {
			paths, err := render.WritePages(labelsRenderDir, batch, &dist)
			if err != nil {
				return err
			}
			printer.Info("  wrote %d sheet(s) to %s\n", len(paths), labelsRenderDir)
			return nil
		}})
	}

	if labelsCommit {
		stages = append(stages, transition.Stage{Name: "commit", Run: func(ctx context.Context) error {
			sinkClient, err := commitpkg.NewClient(e.cfg.Sink.BaseURL, e.cfg.SinkTimeout())
			if err != nil {
				return err
			}
			summary, err = commitpkg.Run(ctx, sinkClient, rows, generator.StartCode(), roster.Names())
			return err
		}})

		if labelsWatch {
			stages = append(stages, transition.Stage{Name: "confirm board", Run: func(ctx context.Context) error {
				// The sink persists asynchronously; the last barcode
				// landing means the whole batch is on the board.
				if len(batch) == 0 {
					return nil
				}
				last := batch[len(batch)-1].BarcodeID
				_, err := watch.PollForCommit(ctx, e.client, last, 10*time.Second)
				return err
			}})
		}
	}

	if labelsManifest != "" {
		stages = append(stages, transition.Stage{Name: "write manifest", Run: func(ctx context.Context) error {
			return export.WriteManifest(labelsManifest, manifestRecords(batch, dist))
		}})
	}

	seq := transition.NewSequence(stages...)
	if err := seq.Run(ctx, func(stage string) {
		printer.Step("%s\n", stage)
	}); err != nil {
		return printer.Error("label batch failed", err.Error(), nil)
	}

	printBatchPreview(batch, dist, generator.TotalPages())

	if labelsCommit {
		printCommitSummary(summary)
	}
	return nil
}

// printBatchPreview shows the batch shape and the requested page.
func printBatchPreview(batch []labels.Label, dist labels.Distribution, totalPages int) {
	printer.Success("Generated %d label(s) across %d page(s)\n", len(batch), totalPages)
	if len(batch) == 0 {
		return
	}

	page := labelsPage - 1
	pageLabels := labels.PageSlice(batch, page)
	if len(pageLabels) == 0 {
		printer.Warning("page %d is out of range (1..%d)\n", labelsPage, totalPages)
		return
	}

	printer.Println()
	printer.Printf("Page %d of %d:\n", labelsPage, totalPages)
	printer.Printf("%-13s %-30s %s\n", "BARCODE", "CAPTION", "EMPLOYEE")
	for _, l := range pageLabels {
		employee := "-"
		if name, ok := dist.EmployeeFor(l.SequenceIndex); ok {
			employee = name
		}
		printer.Printf("%-13s %-30s %s\n", l.BarcodeID, l.Caption, employee)
	}
}

// printCommitSummary reports the per-employee outcome of a sink commit.
func printCommitSummary(summary commitpkg.Summary) {
	printer.Println()
	if summary.Failed == 0 {
		printer.Success("Committed %d label(s) to the task sink\n", summary.Sent)
	} else {
		printer.Warning("committed %d of %d label(s); %d failed\n", summary.Sent, summary.Total, summary.Failed)
	}

	for employee, tally := range summary.PerEmployee {
		printer.Info("  %s: %d sent, %d failed\n", employee, tally.Sent, tally.Failed)
	}
	for _, failure := range summary.Failures {
		printer.Info("  failure: %s\n", failure)
	}
}

// manifestRecords shapes a generated batch as commit records for the
// manifest writer. Unassigned labels carry an empty employee.
func manifestRecords(batch []labels.Label, dist labels.Distribution) []*board.CommitRecord {
	now := time.Now().UnixMilli()
	records := make([]*board.CommitRecord, 0, len(batch))
	for _, l := range batch {
		employee, _ := dist.EmployeeFor(l.SequenceIndex)
		records = append(records, &board.CommitRecord{
			EmployeeName:  employee,
			LiveTask:      l.Caption,
			Status:        board.CommitStatusPending,
			IsoBarcode:    l.BarcodeID,
			CommittedAtMs: now,
		})
	}
	return records
}
