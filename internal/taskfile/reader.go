// Package taskfile imports manual-task rows from spreadsheet workbooks.
// Cell values stay raw strings; deciding whether a row is usable belongs
// to batch expansion, not the importer.
package taskfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/dyluth/pulse/internal/labels"
)

// Accepted header spellings per column, after normalization.
var (
	taskHeaders     = []string{"task", "task name"}
	quantityHeaders = []string{"quantity", "qty"}
	barcodeHeaders  = []string{"barcodes", "barcode count"}
)

// ReadRows loads task rows from a workbook on disk. The extension picks
// the format: .xls uses the legacy reader, everything else is treated as
// xlsx.
func ReadRows(path string) ([]labels.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer f.Close()

	return ParseRows(f, path)
}

// ParseRows reads a workbook from reader; filename only drives format
// selection. The first row must be a header carrying task, quantity and
// barcode columns (extra columns are ignored, order does not matter).
func ParseRows(reader io.Reader, filename string) ([]labels.Row, error) {
	cells, err := readCells(reader, filename)
	if err != nil {
		return nil, err
	}

	headerIndex := map[string]int{}
	for i, header := range cells[0] {
		headerIndex[normalizeHeader(header)] = i
	}

	taskIdx, err := findColumn(headerIndex, taskHeaders)
	if err != nil {
		return nil, err
	}
	quantityIdx, err := findColumn(headerIndex, quantityHeaders)
	if err != nil {
		return nil, err
	}
	barcodeIdx, err := findColumn(headerIndex, barcodeHeaders)
	if err != nil {
		return nil, err
	}

	rows := make([]labels.Row, 0, len(cells)-1)
	for _, row := range cells[1:] {
		r := labels.Row{
			Task:     cellValue(row, taskIdx),
			Quantity: cellValue(row, quantityIdx),
			Barcodes: cellValue(row, barcodeIdx),
		}
		if r.Task == "" && r.Quantity == "" && r.Barcodes == "" {
			continue
		}
		rows = append(rows, r)
	}

	return rows, nil
}

func readCells(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("failed to read xls workbook: %w", err)
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil

	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read workbook: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}
}

func findColumn(headerIndex map[string]int, names []string) (int, error) {
	for _, name := range names {
		if idx, ok := headerIndex[name]; ok {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("missing required column: %s", names[0])
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
