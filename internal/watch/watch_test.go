package watch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/pkg/board"
)

func setupBoard(t *testing.T) *board.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := board.NewClient(&redis.Options{Addr: mr.Addr()}, "northgate")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestPollForCommit(t *testing.T) {
	client := setupBoard(t)
	ctx := context.Background()

	record := board.CommitRecord{
		EmployeeName:  "Jane Doe",
		LiveTask:      "Foam Board x 25",
		Status:        board.CommitStatusPending,
		IsoBarcode:    "m0000000001",
		CommittedAtMs: time.Now().UnixMilli(),
	}

	t.Run("returns record when found immediately", func(t *testing.T) {
		require.NoError(t, client.PutCommit(ctx, &record))

		found, err := PollForCommit(ctx, client, record.IsoBarcode, 2*time.Second)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, record.IsoBarcode, found.IsoBarcode)
		assert.Equal(t, "Jane Doe", found.EmployeeName)
	})

	t.Run("returns record when it lands after a delay", func(t *testing.T) {
		delayed := record
		delayed.IsoBarcode = "m0000000002"
		go func() {
			time.Sleep(450 * time.Millisecond)
			client.PutCommit(context.Background(), &delayed)
		}()

		start := time.Now()
		found, err := PollForCommit(ctx, client, delayed.IsoBarcode, 2*time.Second)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, delayed.IsoBarcode, found.IsoBarcode)
		assert.GreaterOrEqual(t, elapsed, 400*time.Millisecond)
		assert.Less(t, elapsed, 2*time.Second)
	})

	t.Run("returns error on timeout", func(t *testing.T) {
		start := time.Now()
		_, err := PollForCommit(ctx, client, "m0000000099", 500*time.Millisecond)
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout waiting for commit record")
		assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond)
		assert.Less(t, elapsed, time.Second)
	})

	t.Run("returns error when context cancelled", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		_, err := PollForCommit(cancelCtx, client, "m0000000099", 2*time.Second)
		require.Error(t, err)
		assert.Equal(t, context.Canceled, err)
	})
}
