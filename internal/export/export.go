// Package export writes a facility's commit history to files: JSONL for
// pipelines, xz-compressed JSONL for cold storage, and an xlsx manifest
// for the office.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"

	"github.com/dyluth/pulse/pkg/board"
)

// manifestSheet is the single sheet of the xlsx manifest.
const manifestSheet = "Barcodes"

// WriteJSONL writes one JSON object per record, one record per line.
func WriteJSONL(w io.Writer, records []*board.CommitRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode commit record %s: %w", r.IsoBarcode, err)
		}
	}
	return nil
}

// WriteArchive writes the JSONL stream xz-compressed.
func WriteArchive(w io.Writer, records []*board.CommitRecord) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to open xz stream: %w", err)
	}
	if err := WriteJSONL(xw, records); err != nil {
		xw.Close()
		return err
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return nil
}

// WriteManifest writes an xlsx workbook with a Barcodes sheet: one row per
// record with barcode, task, employee, status and commit time columns.
func WriteManifest(path string, records []*board.CommitRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), manifestSheet); err != nil {
		return fmt.Errorf("failed to name manifest sheet: %w", err)
	}

	header := []interface{}{"Barcode", "Task", "Employee", "Status", "Committed"}
	if err := f.SetSheetRow(manifestSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.IsoBarcode,
			r.LiveTask,
			r.EmployeeName,
			string(r.Status),
			time.UnixMilli(r.CommittedAtMs).UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(manifestSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write manifest row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// WriteFile dispatches on the path suffix: .jsonl.xz archives, .xlsx
// writes the manifest, anything else writes plain JSONL.
func WriteFile(path string, records []*board.CommitRecord) error {
	switch {
	case strings.HasSuffix(path, ".jsonl.xz"):
		return writeWith(path, records, WriteArchive)
	case strings.HasSuffix(path, ".xlsx"):
		return WriteManifest(path, records)
	default:
		return writeWith(path, records, WriteJSONL)
	}
}

func writeWith(path string, records []*board.CommitRecord, write func(io.Writer, []*board.CommitRecord) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
