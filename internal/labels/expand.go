// Package labels implements the manual-task label batch pipeline: row
// expansion, barcode numbering, pagination, and employee distribution.
// Everything here is a pure computation over in-memory slices; the board
// and the task sink stay on the other side of the callers.
package labels

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one manual-task table row as entered or imported. Quantity and
// Barcodes stay strings until expansion: upstream sources (spreadsheets,
// flags, table cells) deliver text, and rows that fail to parse are
// dropped rather than surfaced.
type Row struct {
	Task     string
	Quantity string
	Barcodes string
}

// Label is one expanded print unit.
type Label struct {
	Caption       string // "{task} x {quantity}"
	SequenceIndex int    // 0-based position in the flattened batch
	BarcodeID     string // "m" + zero-padded sequence number
}

// Expand flattens task rows into the ordered label batch.
//
// Rows are visited in input order. A row is silently dropped when either
// numeric field fails to parse or when its barcode count is zero or
// negative. Each surviving row appends exactly barcode-count labels (the
// quantity only shapes the caption text). Sequence indexes run continuously
// across rows, starting at zero, and barcode ids continue from startCode
// when one is supplied.
func Expand(rows []Row, startCode string) []Label {
	startNum := ParseStartCode(startCode)

	var batch []Label
	for _, row := range rows {
		quantity, err := strconv.Atoi(strings.TrimSpace(row.Quantity))
		if err != nil {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(row.Barcodes))
		if err != nil || count <= 0 {
			continue
		}

		caption := fmt.Sprintf("%s x %d", row.Task, quantity)
		for i := 0; i < count; i++ {
			seq := len(batch)
			batch = append(batch, Label{
				Caption:       caption,
				SequenceIndex: seq,
				BarcodeID:     FormatBarcodeID(startNum + int64(seq)),
			})
		}
	}

	return batch
}
