package commit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/internal/labels"
)

// fakeSink records every posted request and fails the barcodes it is told
// to reject.
type fakeSink struct {
	requests []Request
	reject   map[string]string
}

func (f *fakeSink) Send(_ context.Context, req Request) error {
	f.requests = append(f.requests, req)
	if msg, ok := f.reject[req.IsoBarcode]; ok {
		return errors.New(msg)
	}
	return nil
}

func TestRunPostsEveryLabel(t *testing.T) {
	sink := &fakeSink{}
	rows := []labels.Row{{Task: "Foam Board", Quantity: "25", Barcodes: "4"}}

	summary, err := Run(context.Background(), sink, rows, "", []string{"Alice", "Bob", "Carol"})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 4, summary.Sent)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, sink.requests, 4)

	// Ascending barcode order, remainder share to the first employee.
	wantEmployees := []string{"Alice", "Alice", "Bob", "Carol"}
	for i, req := range sink.requests {
		assert.Equal(t, labels.FormatBarcodeID(int64(i)), req.IsoBarcode)
		assert.Equal(t, wantEmployees[i], req.EmployeeName)
		assert.Equal(t, "Foam Board x 25", req.LiveTask)
		assert.Equal(t, "Pending", req.Status)
		assert.False(t, req.Erase)
	}

	assert.Equal(t, Tally{Sent: 2}, summary.PerEmployee["Alice"])
	assert.Equal(t, Tally{Sent: 1}, summary.PerEmployee["Bob"])
	assert.Equal(t, Tally{Sent: 1}, summary.PerEmployee["Carol"])
}

func TestRunContinuesPastRejections(t *testing.T) {
	sink := &fakeSink{reject: map[string]string{"m0000000001": "duplicate barcode"}}
	rows := []labels.Row{{Task: "A", Quantity: "1", Barcodes: "3"}}

	summary, err := Run(context.Background(), sink, rows, "", []string{"Alice"})
	require.NoError(t, err, "a rejected record does not fail the batch")

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, sink.requests, 3, "posting continued after the rejection")
	assert.Equal(t, Tally{Sent: 2, Failed: 1}, summary.PerEmployee["Alice"])
	require.Len(t, summary.Failures, 1)
	assert.Contains(t, summary.Failures[0], "duplicate barcode")
}

func TestRunRefusesEmptyRoster(t *testing.T) {
	sink := &fakeSink{}
	rows := []labels.Row{{Task: "A", Quantity: "1", Barcodes: "3"}}

	_, err := Run(context.Background(), sink, rows, "", nil)
	require.ErrorIs(t, err, ErrNoEmployees)
	assert.Empty(t, sink.requests, "refused before any record was posted")
}

func TestRunRecomputesFromRows(t *testing.T) {
	sink := &fakeSink{}
	rows := []labels.Row{
		{Task: "A", Quantity: "2", Barcodes: "2"},
		{Task: "Dropped", Quantity: "x", Barcodes: "9"},
		{Task: "B", Quantity: "1", Barcodes: "1"},
	}

	summary, err := Run(context.Background(), sink, rows, "m0000000010", []string{"Alice", "Bob"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total, "unusable rows are dropped here too")
	require.Len(t, sink.requests, 3)
	assert.Equal(t, "m0000000010", sink.requests[0].IsoBarcode)
	assert.Equal(t, "A x 2", sink.requests[0].LiveTask)
	assert.Equal(t, "B x 1", sink.requests[2].LiveTask)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	sink := &fakeSink{}
	rows := []labels.Row{{Task: "A", Quantity: "1", Barcodes: "5"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Run(ctx, sink, rows, "", []string{"Alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.requests)
	assert.Equal(t, 0, summary.Sent)
}
