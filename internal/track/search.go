// Package track resolves scanned codes against a facility's tracking
// history and lays the results out as a flow chart. A code's namespace is
// inferred from its length, matching how the scanning stations print them.
package track

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/pulse/pkg/board"
)

// Code lengths as printed by the scanning stations.
const (
	orderCodeLength = 8
	leadCodeLength  = 10
	isoCodeLength   = 11
)

// KindForCode maps a scanned code to its tracking namespace by length:
// 8 characters for order numbers, 10 for lead barcodes, 11 for iso
// barcodes.
func KindForCode(code string) (board.TrackingKind, error) {
	switch len(code) {
	case orderCodeLength:
		return board.KindOrder, nil
	case leadCodeLength:
		return board.KindLead, nil
	case isoCodeLength:
		return board.KindIso, nil
	default:
		return "", fmt.Errorf("code %q is %d characters; expected %d (order), %d (lead) or %d (iso)",
			code, len(code), orderCodeLength, leadCodeLength, isoCodeLength)
	}
}

// Result is one resolved tracking search.
type Result struct {
	Kind   board.TrackingKind
	Code   string
	Events []board.TrackingEvent
}

// Searcher resolves scanned codes against one facility's board. The search
// results belong to the caller; nothing is cached here.
type Searcher struct {
	client *board.Client
}

// NewSearcher creates a searcher over the given board client.
func NewSearcher(client *board.Client) *Searcher {
	return &Searcher{client: client}
}

// Search dispatches the code by length, loads its history in chronological
// order, and applies the criteria. A code with no recorded events returns
// an empty result rather than an error.
func (s *Searcher) Search(ctx context.Context, code string, criteria *Criteria) (*Result, error) {
	code = strings.TrimSpace(code)
	kind, err := KindForCode(code)
	if err != nil {
		return nil, err
	}

	events, err := s.client.TrackingHistory(ctx, kind, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s history for %s: %w", kind, code, err)
	}

	result := &Result{Kind: kind, Code: code}
	for _, ev := range events {
		if criteria == nil || criteria.Matches(ev) {
			result.Events = append(result.Events, ev)
		}
	}
	return result, nil
}
