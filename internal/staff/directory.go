// Package staff manages the facility's employee directory on the board.
// System accounts (records that exist only to hold access roles) are kept
// out of the roster views the floor staff see.
package staff

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dyluth/pulse/pkg/board"
)

// Directory reads and mutates one facility's employee records.
type Directory struct {
	client *board.Client
}

// NewDirectory creates a directory over the given board client.
func NewDirectory(client *board.Client) *Directory {
	return &Directory{client: client}
}

// List returns employees sorted by name key. Unless includeHidden is set,
// system accounts (roled records without the all role) are filtered out.
func (d *Directory) List(ctx context.Context, includeHidden bool) ([]*board.Employee, error) {
	employees, err := d.client.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	if includeHidden {
		return employees, nil
	}

	visible := make([]*board.Employee, 0, len(employees))
	for _, e := range employees {
		if e.HiddenFromRoster() {
			continue
		}
		visible = append(visible, e)
	}
	return visible, nil
}

// Search returns the visible employees whose name contains the query,
// case-insensitively. An empty query matches everyone.
func (d *Directory) Search(ctx context.Context, query string) ([]*board.Employee, error) {
	employees, err := d.List(ctx, false)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return employees, nil
	}

	matched := make([]*board.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Get loads one employee by name. Returns a not-found error when no record
// exists; check with board.IsNotFound.
func (d *Directory) Get(ctx context.Context, name string) (*board.Employee, error) {
	return d.client.GetEmployee(ctx, name)
}

// AddOrUpdate validates and stores an employee record. The hourly rate is
// normalized to two decimal places before writing.
func (d *Directory) AddOrUpdate(ctx context.Context, employee *board.Employee) error {
	employee.HourlyRate = roundRate(employee.HourlyRate)
	if err := d.client.PutEmployee(ctx, employee); err != nil {
		return fmt.Errorf("failed to store employee %s: %w", employee.Name, err)
	}
	return nil
}

// Remove deletes an employee record. Removing an unknown name is a no-op.
func (d *Directory) Remove(ctx context.Context, name string) error {
	if err := d.client.DeleteEmployee(ctx, name); err != nil {
		return fmt.Errorf("failed to remove employee %s: %w", name, err)
	}
	return nil
}

// SetRate updates one employee's hourly rate, normalized to two decimal
// places. Setting the rate an employee already has is a no-op.
func (d *Directory) SetRate(ctx context.Context, name string, rate float64) error {
	if rate < 0 {
		return fmt.Errorf("hourly rate must not be negative")
	}

	employee, err := d.client.GetEmployee(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load employee %s: %w", name, err)
	}

	rounded := roundRate(rate)
	if employee.HourlyRate == rounded {
		return nil
	}

	employee.HourlyRate = rounded
	if err := d.client.PutEmployee(ctx, employee); err != nil {
		return fmt.Errorf("failed to update rate for %s: %w", name, err)
	}
	return nil
}

func roundRate(rate float64) float64 {
	return math.Round(rate*100) / 100
}
