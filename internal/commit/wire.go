// Package commit posts generated label batches to the task sink, one
// record per printed label. The slicing of a batch across employees is
// recomputed here from the task rows so the posted assignment never
// depends on what a preview screen happened to show.
package commit

import "github.com/dyluth/pulse/pkg/board"

// Request is the task sink's wire format for a single label commit.
type Request struct {
	EmployeeName string `json:"employeeName"`
	LiveTask     string `json:"liveTask"`
	Status       string `json:"status"`
	IsoBarcode   string `json:"isobarcode"`
	Erase        bool   `json:"erase"`
}

// Response is what the sink returns for each posted record.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewRequest builds the record for one label assignment. Every fresh
// commit starts Pending and never erases.
func NewRequest(employee, caption, barcodeID string) Request {
	return Request{
		EmployeeName: employee,
		LiveTask:     caption,
		Status:       string(board.CommitStatusPending),
		IsoBarcode:   barcodeID,
		Erase:        false,
	}
}
