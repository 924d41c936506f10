package board

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Serialization helpers for converting between Go structs and Redis hashes
//
// Redis stores records as string-to-string maps (hashes). Slice fields are
// JSON-encoded into single hash fields. Tracking events use a legacy pipe-
// delimited line format ("timestamp|station|person") because that is the
// shape scanners and the tracking service already exchange.

// EmployeeToHash converts an Employee struct to a Redis hash format.
// Slice fields (pulse_access, workstations) are JSON-encoded.
func EmployeeToHash(e *Employee) (map[string]interface{}, error) {
	accessJSON, err := json.Marshal(e.PulseAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pulse access: %w", err)
	}

	stationsJSON, err := json.Marshal(e.Workstations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workstations: %w", err)
	}

	hash := map[string]interface{}{
		"name":         e.Name,
		"password":     e.Password,
		"hourly_rate":  strconv.FormatFloat(e.HourlyRate, 'f', 2, 64),
		"pulse_access": string(accessJSON),
		"workstations": string(stationsJSON),
	}

	return hash, nil
}

// HashToEmployee converts a Redis hash to an Employee struct.
// JSON fields are decoded back to Go types.
func HashToEmployee(hash map[string]string) (*Employee, error) {
	rate, err := strconv.ParseFloat(hash["hourly_rate"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hourly_rate field: %w", err)
	}

	var access []AccessRole
	if accessJSON := hash["pulse_access"]; accessJSON != "" {
		if err := json.Unmarshal([]byte(accessJSON), &access); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pulse_access: %w", err)
		}
	}

	var stations []string
	if stationsJSON := hash["workstations"]; stationsJSON != "" {
		if err := json.Unmarshal([]byte(stationsJSON), &stations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workstations: %w", err)
		}
	}

	// Ensure we have empty slices instead of nil for consistency
	if access == nil {
		access = []AccessRole{}
	}
	if stations == nil {
		stations = []string{}
	}

	return &Employee{
		Name:         hash["name"],
		Password:     hash["password"],
		HourlyRate:   rate,
		PulseAccess:  access,
		Workstations: stations,
	}, nil
}

// CommitToHash converts a CommitRecord struct to a Redis hash format.
func CommitToHash(c *CommitRecord) map[string]interface{} {
	return map[string]interface{}{
		"employee_name":   c.EmployeeName,
		"live_task":       c.LiveTask,
		"status":          string(c.Status),
		"iso_barcode":     c.IsoBarcode,
		"erase":           strconv.FormatBool(c.Erase),
		"committed_at_ms": c.CommittedAtMs,
	}
}

// HashToCommit converts a Redis hash to a CommitRecord struct.
func HashToCommit(hash map[string]string) (*CommitRecord, error) {
	erase, err := strconv.ParseBool(hash["erase"])
	if err != nil {
		return nil, fmt.Errorf("invalid erase field: %w", err)
	}

	committedAtMs, _ := strconv.ParseInt(hash["committed_at_ms"], 10, 64)

	return &CommitRecord{
		EmployeeName:  hash["employee_name"],
		LiveTask:      hash["live_task"],
		Status:        CommitStatus(hash["status"]),
		IsoBarcode:    hash["iso_barcode"],
		Erase:         erase,
		CommittedAtMs: committedAtMs,
	}, nil
}

// SessionToHash converts a Session struct to a Redis hash format.
func SessionToHash(s *Session) map[string]interface{} {
	return map[string]interface{}{
		"token":         s.Token,
		"employee_name": s.EmployeeName,
		"created_at_ms": s.CreatedAtMs,
	}
}

// HashToSession converts a Redis hash to a Session struct.
func HashToSession(hash map[string]string) (*Session, error) {
	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)

	s := &Session{
		Token:        hash["token"],
		EmployeeName: hash["employee_name"],
		CreatedAtMs:  createdAtMs,
	}

	if s.Token == "" || s.EmployeeName == "" {
		return nil, fmt.Errorf("incomplete session hash")
	}

	return s, nil
}

// String renders the tracking event in its wire form:
// "timestamp|station|person" with the timestamp in Unix seconds.
func (ev TrackingEvent) String() string {
	return fmt.Sprintf("%d|%s|%s", ev.At.Unix(), ev.Station, ev.Person)
}

// ParseTrackingEvent parses a wire line back into a TrackingEvent.
// The line must have exactly three pipe-delimited fields and a numeric
// timestamp; station and person may be empty.
func ParseTrackingEvent(line string) (TrackingEvent, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return TrackingEvent{}, fmt.Errorf("malformed tracking event line: %q", line)
	}

	secs, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return TrackingEvent{}, fmt.Errorf("invalid tracking event timestamp %q: %w", parts[0], err)
	}

	return TrackingEvent{
		At:      time.Unix(secs, 0).UTC(),
		Station: parts[1],
		Person:  parts[2],
	}, nil
}
