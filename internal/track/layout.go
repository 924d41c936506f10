package track

import (
	"strings"

	"github.com/dyluth/pulse/pkg/board"
)

// Chart geometry, in pixels.
const (
	xSpacing   = 300
	ySpacing   = 100
	nodeRadius = 20
	padding    = 40
)

// reprintStation marks an event that restarted printing. Comparison is
// case-insensitive.
const reprintStation = "REPRINT"

// Node is one laid-out tracking event. X and Y are the node centre.
type Node struct {
	Event board.TrackingEvent
	X     int
	Y     int
	// Reprint nodes take the distinguishing color and break the chain.
	Reprint bool
	// Connected nodes draw a line from the previous node. The first node,
	// a reprint node, and the node opening a fresh column never do.
	Connected bool
}

// Layout places events top-to-bottom in a vertical chain at fixed spacing.
// A REPRINT event keeps its natural slot in the current column; the event
// after it opens a new column to the right, aligned with the reprint node
// and not joined to it, and later events continue downward from there.
// Chronological order is preserved within each column.
func Layout(events []board.TrackingEvent) []Node {
	nodes := make([]Node, 0, len(events))
	col, row := 0, 0
	connected := false

	for _, ev := range events {
		node := Node{
			Event: ev,
			X:     padding + col*xSpacing,
			Y:     padding + nodeRadius + row*ySpacing,
		}

		if strings.EqualFold(strings.TrimSpace(ev.Station), reprintStation) {
			node.Reprint = true
			nodes = append(nodes, node)
			col++
			connected = false
			continue
		}

		node.Connected = connected
		nodes = append(nodes, node)
		row++
		connected = true
	}

	return nodes
}
