package track

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/pulse/pkg/board"
)

// Tail streams the facility's live tracking feed to out, one line per
// event, until the context is cancelled or the subscription ends.
func Tail(ctx context.Context, client *board.Client, out io.Writer) error {
	sub, err := client.SubscribeTrackingEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to tracking events: %w", err)
	}
	defer sub.Close()

	events := sub.Events()
	errs := sub.Errors()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case item, ok := <-events:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "[%s %s] %s\n", item.Kind, item.Code, EventLine(item.Event))

		case subErr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(out, "warning: %v\n", subErr)
		}
	}
}
