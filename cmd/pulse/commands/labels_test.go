package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/internal/labels"
	"github.com/dyluth/pulse/pkg/board"
)

func TestManifestRecords(t *testing.T) {
	rows := []labels.Row{{Task: "Foam Board", Quantity: "25", Barcodes: "4"}}
	batch := labels.Expand(rows, "")

	t.Run("with a roster", func(t *testing.T) {
		dist := labels.Distribute(batch, []string{"Alice", "Bob", "Carol"})

		records := manifestRecords(batch, dist)
		require.Len(t, records, 4)

		// Shares: 4/3 = 1 remainder 1, so Alice takes the extra.
		assert.Equal(t, "Alice", records[0].EmployeeName)
		assert.Equal(t, "Alice", records[1].EmployeeName)
		assert.Equal(t, "Bob", records[2].EmployeeName)
		assert.Equal(t, "Carol", records[3].EmployeeName)

		for i, rec := range records {
			assert.Equal(t, "Foam Board x 25", rec.LiveTask)
			assert.Equal(t, batch[i].BarcodeID, rec.IsoBarcode)
			assert.Equal(t, board.CommitStatusPending, rec.Status)
		}
	})

	t.Run("without a roster", func(t *testing.T) {
		dist := labels.Distribute(batch, nil)

		records := manifestRecords(batch, dist)
		require.Len(t, records, 4)
		for _, rec := range records {
			assert.Empty(t, rec.EmployeeName)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		records := manifestRecords(nil, labels.Distribute(nil, nil))
		assert.Empty(t, records)
	})
}
