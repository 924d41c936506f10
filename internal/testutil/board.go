// Package testutil provides shared helpers for board-backed tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/pkg/board"
)

// NewBoard starts an in-process Redis and returns a board client scoped to
// the given facility. Both are cleaned up when the test finishes.
func NewBoard(t *testing.T, facility string) (*board.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := board.NewClient(&redis.Options{Addr: mr.Addr()}, facility)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

// SeedEmployee writes an employee record, failing the test on error.
func SeedEmployee(t *testing.T, client *board.Client, e *board.Employee) {
	t.Helper()
	require.NoError(t, client.PutEmployee(context.Background(), e))
}

// SeedCommit writes a commit record with the given barcode and timestamp,
// failing the test on error.
func SeedCommit(t *testing.T, client *board.Client, barcode, employee, task string, at time.Time) {
	t.Helper()
	require.NoError(t, client.PutCommit(context.Background(), &board.CommitRecord{
		EmployeeName:  employee,
		LiveTask:      task,
		Status:        board.CommitStatusPending,
		IsoBarcode:    barcode,
		CommittedAtMs: at.UnixMilli(),
	}))
}
