package taskfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dyluth/pulse/internal/labels"
)

// writeWorkbook builds an xlsx file from rows and returns its path.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Task", "Quantity", "Barcodes"},
		{"Foam Board", 25, 4},
		{"Acrylic Sheet", 10, 2},
	})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, labels.Row{Task: "Foam Board", Quantity: "25", Barcodes: "4"}, rows[0])
	assert.Equal(t, labels.Row{Task: "Acrylic Sheet", Quantity: "10", Barcodes: "2"}, rows[1])
}

func TestReadRowsHeaderVariants(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{" Task Name ", "QTY", "Barcode Count"},
		{"Foam Board", "25", "4"},
	})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Foam Board", rows[0].Task)
	assert.Equal(t, "25", rows[0].Quantity)
	assert.Equal(t, "4", rows[0].Barcodes)
}

func TestReadRowsIgnoresExtraColumnsAndOrder(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Notes", "Barcodes", "Task", "Quantity"},
		{"rush order", "3", "Foam Board", "25"},
	})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, labels.Row{Task: "Foam Board", Quantity: "25", Barcodes: "3"}, rows[0])
}

func TestReadRowsKeepsRawUnparseableValues(t *testing.T) {
	// The importer must not judge the numbers; expansion drops bad rows.
	path := writeWorkbook(t, [][]interface{}{
		{"Task", "Quantity", "Barcodes"},
		{"Foam Board", "lots", "4"},
	})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "lots", rows[0].Quantity)
}

func TestReadRowsSkipsBlankLines(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Task", "Quantity", "Barcodes"},
		{"Foam Board", "25", "4"},
		{"", "", ""},
		{"Acrylic Sheet", "10", "2"},
	})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadRowsShortRowsTolerated(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Task", "Quantity", "Barcodes"},
		{"Foam Board"},
	})

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, labels.Row{Task: "Foam Board"}, rows[0])
}

func TestReadRowsMissingColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Task", "Quantity"},
		{"Foam Board", "25"},
	})

	_, err := ReadRows(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: barcodes")
}

func TestParseRowsRejectsGarbage(t *testing.T) {
	_, err := ParseRows(bytes.NewReader([]byte("not a workbook")), "tasks.xlsx")
	assert.Error(t, err)

	_, err = ParseRows(bytes.NewReader([]byte("not a workbook")), "tasks.xls")
	assert.Error(t, err)
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
