package board

import (
	"testing"

	"github.com/google/uuid"
)

// TestEmployeeValidate_Valid tests that valid employees pass validation
func TestEmployeeValidate_Valid(t *testing.T) {
	employee := &Employee{
		Name:         "Jane Doe",
		Password:     "hunter2",
		HourlyRate:   14.50,
		PulseAccess:  []AccessRole{AccessStaffManager, AccessViewPayRate},
		Workstations: []string{"Press", "Laminator"},
	}

	if err := employee.Validate(); err != nil {
		t.Errorf("valid employee failed validation: %v", err)
	}
}

// TestEmployeeValidate_BlankName tests that whitespace-only names fail validation
func TestEmployeeValidate_BlankName(t *testing.T) {
	employee := &Employee{Name: "   "}

	if err := employee.Validate(); err == nil {
		t.Error("expected validation to fail for blank name, but it passed")
	}
}

// TestEmployeeValidate_NegativeRate tests that negative hourly rates fail validation
func TestEmployeeValidate_NegativeRate(t *testing.T) {
	employee := &Employee{Name: "Jane", HourlyRate: -1}

	if err := employee.Validate(); err == nil {
		t.Error("expected validation to fail for negative rate, but it passed")
	}
}

// TestEmployeeValidate_UnknownRole tests that unknown access roles fail validation
func TestEmployeeValidate_UnknownRole(t *testing.T) {
	employee := &Employee{
		Name:        "Jane",
		PulseAccess: []AccessRole{"superuser"},
	}

	if err := employee.Validate(); err == nil {
		t.Error("expected validation to fail for unknown role, but it passed")
	}
}

// TestEmployeeHasAccess tests role checks including the AccessAll wildcard
func TestEmployeeHasAccess(t *testing.T) {
	manager := &Employee{Name: "Sam", PulseAccess: []AccessRole{AccessFacilityManager}}
	if !manager.HasAccess(AccessFacilityManager) {
		t.Error("expected facilitymanager access to be granted")
	}
	if manager.HasAccess(AccessViewPayRate) {
		t.Error("expected viewpayrate access to be denied")
	}

	admin := &Employee{Name: "Root", PulseAccess: []AccessRole{AccessAll}}
	if !admin.HasAccess(AccessViewPayRate) {
		t.Error("expected all-access holder to pass every check")
	}

	floor := &Employee{Name: "Pat"}
	if floor.HasAccess(AccessManualTasks) {
		t.Error("expected employee without roles to be denied")
	}
}

// TestEmployeeHiddenFromRoster tests the system-account visibility rule:
// system accounts are hidden from the staff roster unless they hold "all".
func TestEmployeeHiddenFromRoster(t *testing.T) {
	floor := &Employee{Name: "Pat"}
	if floor.HiddenFromRoster() {
		t.Error("floor staff must stay visible")
	}

	system := &Employee{Name: "tracker", PulseAccess: []AccessRole{AccessTrackingTool}}
	if !system.HiddenFromRoster() {
		t.Error("system account without all-access must be hidden")
	}

	admin := &Employee{Name: "Root", PulseAccess: []AccessRole{AccessAll}}
	if admin.HiddenFromRoster() {
		t.Error("all-access holder must stay visible")
	}
}

// TestNameKey tests name normalisation
func TestNameKey(t *testing.T) {
	if NameKey("Jane Doe") != NameKey(" jane doe ") {
		t.Error("expected trimmed, case-folded names to share a key")
	}
	if NameKey("  ") != "" {
		t.Error("expected whitespace-only name to normalise to empty")
	}
}

// TestAccessRoleValidate_AllValid tests every defined role validates
func TestAccessRoleValidate_AllValid(t *testing.T) {
	roles := []AccessRole{
		AccessAll, AccessFacilityManager, AccessViewPayRate,
		AccessDataAnalysis, AccessStaffManager, AccessTrackingTool, AccessManualTasks,
	}

	for _, role := range roles {
		if err := role.Validate(); err != nil {
			t.Errorf("role %q failed validation: %v", role, err)
		}
	}
}

// TestAccessRoleValidate_Invalid tests that unknown roles fail
func TestAccessRoleValidate_Invalid(t *testing.T) {
	if err := AccessRole("janitor").Validate(); err == nil {
		t.Error("expected unknown role to fail validation")
	}
}

// TestCommitRecordValidate tests commit record validation
func TestCommitRecordValidate(t *testing.T) {
	valid := &CommitRecord{
		EmployeeName: "Jane Doe",
		LiveTask:     "Foam Board x 25",
		Status:       CommitStatusPending,
		IsoBarcode:   "m0000000003",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid commit record failed validation: %v", err)
	}

	badBarcode := &CommitRecord{
		EmployeeName: "Jane Doe",
		LiveTask:     "Foam Board x 25",
		Status:       CommitStatusPending,
		IsoBarcode:   "x123",
	}
	if err := badBarcode.Validate(); err == nil {
		t.Error("expected validation to fail for malformed barcode")
	}

	badStatus := &CommitRecord{
		EmployeeName: "Jane Doe",
		LiveTask:     "Foam Board x 25",
		Status:       "Lost",
		IsoBarcode:   "m0000000003",
	}
	if err := badStatus.Validate(); err == nil {
		t.Error("expected validation to fail for unknown status")
	}
}

// TestIsBarcodeID tests the issued-barcode shape check
func TestIsBarcodeID(t *testing.T) {
	for _, ok := range []string{"m0000000000", "m0000000042", "m12345678901"} {
		if !IsBarcodeID(ok) {
			t.Errorf("expected %q to be a barcode id", ok)
		}
	}
	for _, bad := range []string{"", "m", "M0000000001", "0000000001", "m00000a0001"} {
		if IsBarcodeID(bad) {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

// TestTrackingKindValidate tests kind enum validation
func TestTrackingKindValidate(t *testing.T) {
	for _, kind := range []TrackingKind{KindOrder, KindLead, KindIso} {
		if err := kind.Validate(); err != nil {
			t.Errorf("kind %q failed validation: %v", kind, err)
		}
	}
	if err := TrackingKind("pallet").Validate(); err == nil {
		t.Error("expected unknown kind to fail validation")
	}
}

// TestSessionValidate tests session validation
func TestSessionValidate(t *testing.T) {
	valid := &Session{Token: uuid.New().String(), EmployeeName: "Jane Doe"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid session failed validation: %v", err)
	}

	badToken := &Session{Token: "not-a-uuid", EmployeeName: "Jane Doe"}
	if err := badToken.Validate(); err == nil {
		t.Error("expected validation to fail for non-UUID token")
	}

	noName := &Session{Token: uuid.New().String(), EmployeeName: " "}
	if err := noName.Validate(); err == nil {
		t.Error("expected validation to fail for blank employee name")
	}
}
