package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/pulse/pkg/board"
)

// PollForCommit polls the board until the commit record for the given
// barcode appears, or the timeout elapses. The sink persists records
// asynchronously, so a freshly posted batch can take a moment to land.
// Polls every 200ms.
func PollForCommit(ctx context.Context, client *board.Client, isoBarcode string, timeout time.Duration) (*board.CommitRecord, error) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	timeoutCh := time.After(timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timeoutCh:
			return nil, fmt.Errorf("timeout waiting for commit record %s after %v", isoBarcode, timeout)

		case <-ticker.C:
			record, err := client.GetCommit(ctx, isoBarcode)
			if err != nil {
				if board.IsNotFound(err) {
					// Not persisted yet, keep polling
					continue
				}
				return nil, fmt.Errorf("failed to query for commit record: %w", err)
			}

			return record, nil
		}
	}
}
