package track

import (
	"fmt"
	"time"

	"github.com/dyluth/pulse/pkg/board"
)

// Placeholder texts for anomalous scans. Stations occasionally record an
// image with no barcode, or a barcode with no image; those events are shown
// flagged rather than dropped.
const (
	missingStationText = "[image located without an associated barcode]"
	missingPersonText  = "[barcode found with no associated scan image]"
)

// FormatEventTime renders an event timestamp the way the tracking screens
// show it: day with its English ordinal suffix, then month, year and
// clock, e.g. "3rd August 2026 | 14:03:05".
func FormatEventTime(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%d%s %s", day, ordinalSuffix(day), t.Format("January 2006 | 15:04:05"))
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// DisplayStation returns the event's station, or the flagged placeholder
// when the scan carried none.
func DisplayStation(ev board.TrackingEvent) string {
	if ev.Station == "" {
		return missingStationText
	}
	return ev.Station
}

// DisplayPerson returns the event's person, or the flagged placeholder
// when the scan carried none.
func DisplayPerson(ev board.TrackingEvent) string {
	if ev.Person == "" {
		return missingPersonText
	}
	return ev.Person
}

// EventLine renders one event as a single display line.
func EventLine(ev board.TrackingEvent) string {
	return fmt.Sprintf("%s | %s | %s", FormatEventTime(ev.At), DisplayStation(ev), DisplayPerson(ev))
}
