package commit

import (
	"context"
	"errors"
	"fmt"

	"github.com/dyluth/pulse/internal/labels"
)

// ErrNoEmployees is returned when a commit is attempted with an empty
// roster. The check runs before any record is posted.
var ErrNoEmployees = errors.New("no employees selected to receive the batch")

// Sender posts a single commit record.
type Sender interface {
	Send(ctx context.Context, req Request) error
}

// Tally counts outcomes for one employee.
type Tally struct {
	Sent   int
	Failed int
}

// Summary reports the outcome of a batch commit.
type Summary struct {
	Total       int
	Sent        int
	Failed      int
	PerEmployee map[string]Tally
	// Failures holds one message per rejected record, in posting order.
	Failures []string
}

// Run expands the task rows, slices the batch across the roster, and posts
// one record per label, in ascending sequence order. The expansion and
// slicing are recomputed here from the rows themselves.
//
// Posting is sequential and a rejected record does not stop the batch; the
// summary carries per-employee tallies either way. Only context
// cancellation aborts early, returning the summary of what was posted so
// far alongside the context error.
func Run(ctx context.Context, sink Sender, rows []labels.Row, startCode string, employees []string) (Summary, error) {
	summary := Summary{PerEmployee: make(map[string]Tally)}
	if len(employees) == 0 {
		return summary, ErrNoEmployees
	}

	batch := labels.Expand(rows, startCode)
	dist := labels.Distribute(batch, employees)
	summary.Total = len(batch)

	for _, l := range batch {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("commit aborted after %d of %d records: %w", summary.Sent+summary.Failed, summary.Total, err)
		}

		employee, ok := dist.EmployeeFor(l.SequenceIndex)
		if !ok {
			// Expand and Distribute cover the same batch; a gap here means a bug.
			return summary, fmt.Errorf("label %s has no assigned employee", l.BarcodeID)
		}

		tally := summary.PerEmployee[employee]
		if err := sink.Send(ctx, NewRequest(employee, l.Caption, l.BarcodeID)); err != nil {
			summary.Failed++
			tally.Failed++
			summary.Failures = append(summary.Failures, err.Error())
		} else {
			summary.Sent++
			tally.Sent++
		}
		summary.PerEmployee[employee] = tally
	}

	return summary, nil
}
