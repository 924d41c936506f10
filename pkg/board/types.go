package board

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee is a single staff record. One type serves every screen: the
// board is the only place allowed to normalise names, so callers never
// need to re-trim or case-fold fields themselves.
type Employee struct {
	Name         string       `json:"name"`         // Display name, also the record identity (case-insensitive)
	Password     string       `json:"password"`     // Login secret, compared verbatim at login
	HourlyRate   float64      `json:"hourly_rate"`  // Pay rate, two-decimal currency value
	PulseAccess  []AccessRole `json:"pulse_access"` // System access roles; empty for floor staff
	Workstations []string     `json:"workstations"` // Stations this employee is trained on
}

// AccessRole grants an employee access to a Pulse surface or capability.
type AccessRole string

const (
	// AccessAll grants every capability, including visibility of system accounts.
	AccessAll AccessRole = "all"

	// AccessFacilityManager allows workstation and training changes.
	AccessFacilityManager AccessRole = "facilitymanager"

	// AccessViewPayRate allows hourly rates to be displayed.
	AccessViewPayRate AccessRole = "viewpayrate"

	// AccessDataAnalysis opens the data analysis surface.
	AccessDataAnalysis AccessRole = "dataanalysis"

	// AccessStaffManager opens the staff management surface.
	AccessStaffManager AccessRole = "staffmanager"

	// AccessTrackingTool opens the tracking lookup surface.
	AccessTrackingTool AccessRole = "trackingtool"

	// AccessManualTasks opens the manual task label surface.
	AccessManualTasks AccessRole = "manualtasks"
)

// CommitRecord is one issued barcode posted to the task sink: the pairing
// of an employee with a live task caption and the barcode they will scan.
type CommitRecord struct {
	EmployeeName  string       `json:"employee_name"`
	LiveTask      string       `json:"live_task"` // The label caption, e.g. "Foam Board x 25"
	Status        CommitStatus `json:"status"`
	IsoBarcode    string       `json:"iso_barcode"`
	Erase         bool         `json:"erase"`
	CommittedAtMs int64        `json:"committed_at_ms"`
}

// CommitStatus is the lifecycle state of a committed task barcode.
type CommitStatus string

const (
	// CommitStatusPending marks a freshly issued barcode awaiting work.
	CommitStatusPending CommitStatus = "Pending"

	// CommitStatusComplete marks a barcode whose task has been finished.
	CommitStatusComplete CommitStatus = "Complete"

	// CommitStatusError marks a barcode the sink could not process.
	CommitStatusError CommitStatus = "Error"
)

// TrackingKind selects which tracking index a code belongs to.
type TrackingKind string

const (
	// KindOrder is an 8-digit order number.
	KindOrder TrackingKind = "order"

	// KindLead is a 10-character lead barcode.
	KindLead TrackingKind = "lead"

	// KindIso is an 11-character iso barcode.
	KindIso TrackingKind = "iso"
)

// TrackingEvent is one scan in a container's history. The wire form is
// "timestamp|station|person" with the timestamp in Unix seconds.
type TrackingEvent struct {
	At      time.Time `json:"at"`
	Station string    `json:"station"`
	Person  string    `json:"person"`
}

// TrackingFeedItem is the payload published on the tracking events channel
// whenever a new event is appended to any history.
type TrackingFeedItem struct {
	Kind  TrackingKind  `json:"kind"`
	Code  string        `json:"code"`
	Event TrackingEvent `json:"event"`
}

// Session is a logged-in employee's token record. Sessions expire in Redis
// via TTL; a missing session means the login has lapsed.
type Session struct {
	Token        string `json:"token"` // UUID
	EmployeeName string `json:"employee_name"`
	CreatedAtMs  int64  `json:"created_at_ms"`
}

// barcodePattern matches issued barcode ids: "m" followed by the numeric
// counter, zero-padded to at least 10 digits when generated.
var barcodePattern = regexp.MustCompile(`^m\d+$`)

// NameKey normalises an employee name into its record identity:
// trimmed and case-folded. Two names with the same key are the same employee.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsBarcodeID reports whether s has the issued-barcode shape ("m" + digits).
func IsBarcodeID(s string) bool {
	return barcodePattern.MatchString(s)
}

// Validate checks if the Employee has valid field values.
func (e *Employee) Validate() error {
	if NameKey(e.Name) == "" {
		return fmt.Errorf("employee name cannot be empty")
	}

	if e.HourlyRate < 0 {
		return fmt.Errorf("hourly rate cannot be negative: %v", e.HourlyRate)
	}

	for i, role := range e.PulseAccess {
		if err := role.Validate(); err != nil {
			return fmt.Errorf("invalid access role at index %d: %w", i, err)
		}
	}

	for i, ws := range e.Workstations {
		if strings.TrimSpace(ws) == "" {
			return fmt.Errorf("empty workstation name at index %d", i)
		}
	}

	return nil
}

// HasAccess reports whether the employee holds the given role.
// AccessAll satisfies every check.
func (e *Employee) HasAccess(role AccessRole) bool {
	for _, r := range e.PulseAccess {
		if r == AccessAll || r == role {
			return true
		}
	}
	return false
}

// HiddenFromRoster reports whether this record is a system account that the
// staff roster must hide. System accounts carry Pulse access roles; only
// holders of AccessAll stay visible.
func (e *Employee) HiddenFromRoster() bool {
	return len(e.PulseAccess) > 0 && !e.HasAccess(AccessAll)
}

// Validate checks if the AccessRole is a valid enum value.
func (r AccessRole) Validate() error {
	switch r {
	case AccessAll, AccessFacilityManager, AccessViewPayRate,
		AccessDataAnalysis, AccessStaffManager, AccessTrackingTool, AccessManualTasks:
		return nil
	default:
		return fmt.Errorf("unknown access role: %q", r)
	}
}

// Validate checks if the CommitRecord has valid field values.
func (c *CommitRecord) Validate() error {
	if strings.TrimSpace(c.EmployeeName) == "" {
		return fmt.Errorf("employee name cannot be empty")
	}

	if strings.TrimSpace(c.LiveTask) == "" {
		return fmt.Errorf("live task cannot be empty")
	}

	if err := c.Status.Validate(); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	if !IsBarcodeID(c.IsoBarcode) {
		return fmt.Errorf("invalid iso barcode: %q", c.IsoBarcode)
	}

	return nil
}

// Validate checks if the CommitStatus is a valid enum value.
func (s CommitStatus) Validate() error {
	switch s {
	case CommitStatusPending, CommitStatusComplete, CommitStatusError:
		return nil
	default:
		return fmt.Errorf("unknown commit status: %q", s)
	}
}

// Validate checks if the TrackingKind is a valid enum value.
func (k TrackingKind) Validate() error {
	switch k {
	case KindOrder, KindLead, KindIso:
		return nil
	default:
		return fmt.Errorf("unknown tracking kind: %q", k)
	}
}

// Validate checks if the TrackingEvent has valid field values.
// Station and person may be empty (anomalous scans are kept, not dropped);
// only the timestamp is mandatory.
func (ev *TrackingEvent) Validate() error {
	if ev.At.IsZero() {
		return fmt.Errorf("tracking event timestamp cannot be zero")
	}
	return nil
}

// Validate checks if the Session has valid field values.
func (s *Session) Validate() error {
	if !isValidUUID(s.Token) {
		return fmt.Errorf("invalid session token: not a valid UUID")
	}

	if NameKey(s.EmployeeName) == "" {
		return fmt.Errorf("session employee name cannot be empty")
	}

	return nil
}

// isValidUUID checks if a string is a valid UUID format.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
