package track

import (
	"path/filepath"

	"github.com/dyluth/pulse/pkg/board"
)

// Criteria narrows a tracking history. All filters are ANDed together; an
// event must match every active criterion to pass.
type Criteria struct {
	SinceTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	StationGlob      string // Glob pattern for the station name, empty = no filter
}

// Matches reports whether the event passes all active criteria. Zero/empty
// criterion values match everything for that criterion.
func (c *Criteria) Matches(ev board.TrackingEvent) bool {
	tsMs := ev.At.UnixMilli()
	if c.SinceTimestampMs > 0 && tsMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && tsMs > c.UntilTimestampMs {
		return false
	}

	if c.StationGlob != "" {
		matched, err := filepath.Match(c.StationGlob, ev.Station)
		if err != nil || !matched {
			return false
		}
	}

	return true
}

// HasFilters reports whether any criterion is active.
func (c *Criteria) HasFilters() bool {
	return c.SinceTimestampMs > 0 || c.UntilTimestampMs > 0 || c.StationGlob != ""
}
