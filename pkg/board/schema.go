package board

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by facility name to
// enable multiple facilities to safely coexist on a single Redis server.
//
// Key pattern: pulse:{facility}:{entity}:{id}
// Channel pattern: pulse:{facility}:{event_type}_events

// EmployeeKey returns the Redis key for an employee record.
// Pattern: pulse:{facility}:employee:{name_key}
func EmployeeKey(facility, nameKey string) string {
	return fmt.Sprintf("pulse:%s:employee:%s", facility, nameKey)
}

// EmployeeScanPattern returns the SCAN MATCH pattern covering every
// employee record in a facility.
func EmployeeScanPattern(facility string) string {
	return fmt.Sprintf("pulse:%s:employee:*", facility)
}

// StationsKey returns the Redis key for the facility's workstation set.
// Pattern: pulse:{facility}:stations
func StationsKey(facility string) string {
	return fmt.Sprintf("pulse:%s:stations", facility)
}

// CommitKey returns the Redis key for a committed barcode record.
// Pattern: pulse:{facility}:commit:{barcode_id}
func CommitKey(facility, barcodeID string) string {
	return fmt.Sprintf("pulse:%s:commit:%s", facility, barcodeID)
}

// CommitIndexKey returns the Redis key for the commit time index ZSET.
// Members are barcode ids scored by committed_at_ms, which makes the most
// recently issued barcode a single ZREVRANGE away.
// Pattern: pulse:{facility}:commits
func CommitIndexKey(facility string) string {
	return fmt.Sprintf("pulse:%s:commits", facility)
}

// TrackingKey returns the Redis key for a tracking history ZSET.
// Members are event wire lines scored by event time in milliseconds.
// Pattern: pulse:{facility}:tracking:{kind}:{code}
func TrackingKey(facility string, kind TrackingKind, code string) string {
	return fmt.Sprintf("pulse:%s:tracking:%s:%s", facility, kind, code)
}

// SessionKey returns the Redis key for a login session.
// Pattern: pulse:{facility}:session:{token}
func SessionKey(facility, token string) string {
	return fmt.Sprintf("pulse:%s:session:%s", facility, token)
}

// TrackingEventsChannel returns the Pub/Sub channel name for tracking events.
// Pattern: pulse:{facility}:tracking_events
func TrackingEventsChannel(facility string) string {
	return fmt.Sprintf("pulse:%s:tracking_events", facility)
}

// CommitEventsChannel returns the Pub/Sub channel name for commit events.
// Pattern: pulse:{facility}:commit_events
func CommitEventsChannel(facility string) string {
	return fmt.Sprintf("pulse:%s:commit_events", facility)
}
